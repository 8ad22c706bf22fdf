package payrollrun_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/payrollrun"
	payrollrunerrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/payrollrun/errors"
)

type fakeRunService struct {
	AggregateFn    func(ctx context.Context, companyID, actorID string, req payrollrun.CreateRunRequest) (payrollrun.RunResponse, error)
	GetAllFn       func(ctx context.Context, companyID string, filter payrollrun.GetRunsFilterRequest) ([]payrollrun.RunResponse, error)
	GetByIDFn      func(ctx context.Context, companyID, id string) (payrollrun.RunResponse, error)
	UpdateStatusFn func(ctx context.Context, companyID, actorID, role, id string, req payrollrun.UpdateStatusRequest) (payrollrun.RunResponse, error)
	DeleteFn       func(ctx context.Context, companyID, id string) error
	ExportFn       func(ctx context.Context, companyID, id string) (string, []byte, error)
}

func (f *fakeRunService) Aggregate(ctx context.Context, companyID, actorID string, req payrollrun.CreateRunRequest) (payrollrun.RunResponse, error) {
	return f.AggregateFn(ctx, companyID, actorID, req)
}
func (f *fakeRunService) GetAll(ctx context.Context, companyID string, filter payrollrun.GetRunsFilterRequest) ([]payrollrun.RunResponse, error) {
	return f.GetAllFn(ctx, companyID, filter)
}
func (f *fakeRunService) GetByID(ctx context.Context, companyID, id string) (payrollrun.RunResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeRunService) UpdateStatus(ctx context.Context, companyID, actorID, role, id string, req payrollrun.UpdateStatusRequest) (payrollrun.RunResponse, error) {
	return f.UpdateStatusFn(ctx, companyID, actorID, role, id, req)
}
func (f *fakeRunService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}
func (f *fakeRunService) Export(ctx context.Context, companyID, id string) (string, []byte, error) {
	return f.ExportFn(ctx, companyID, id)
}

func TestPayrollRunHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		actorID := uuid.New().String()

		svc := &fakeRunService{
			AggregateFn: func(ctx context.Context, cid, aid string, req payrollrun.CreateRunRequest) (payrollrun.RunResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, actorID, aid)
				assert.Equal(t, 3, req.PayrollMonth)
				return payrollrun.RunResponse{
					ID:        uuid.New().String(),
					CompanyID: cid,
					Status:    payrollrun.StatusDraft,
				}, nil
			},
		}

		h := payrollrun.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"site_id":"` + uuid.New().String() + `","payroll_month":3,"payroll_year":2026}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll-runs", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		c.Set("company_id", companyID)
		c.Set("employee_id", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), payrollrun.StatusDraft)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &fakeRunService{}
		h := payrollrun.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll-runs", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate period returns conflict", func(t *testing.T) {
		svc := &fakeRunService{
			AggregateFn: func(ctx context.Context, cid, aid string, req payrollrun.CreateRunRequest) (payrollrun.RunResponse, error) {
				return payrollrun.RunResponse{}, payrollrunerrors.ErrDuplicateRun
			},
		}

		h := payrollrun.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"site_id":"` + uuid.New().String() + `","payroll_month":3,"payroll_year":2026}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll-runs", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeRunService{
			AggregateFn: func(ctx context.Context, cid, aid string, req payrollrun.CreateRunRequest) (payrollrun.RunResponse, error) {
				return payrollrun.RunResponse{}, errors.New("database connection failed")
			},
		}

		h := payrollrun.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"site_id":"` + uuid.New().String() + `","payroll_month":3,"payroll_year":2026}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll-runs", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPayrollRunHandler_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("forwards role from context", func(t *testing.T) {
		runID := uuid.New().String()

		svc := &fakeRunService{
			UpdateStatusFn: func(ctx context.Context, cid, aid, role, id string, req payrollrun.UpdateStatusRequest) (payrollrun.RunResponse, error) {
				assert.Equal(t, "HR", role)
				assert.Equal(t, runID, id)
				assert.Equal(t, payrollrun.StatusReviewed, req.Status)
				return payrollrun.RunResponse{ID: id, Status: req.Status}, nil
			},
		}

		h := payrollrun.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/payroll-runs/"+runID+"/status", strings.NewReader(`{"status":"REVIEWED"}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: runID}}
		c.Set("company_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())
		c.Set("role", "HR")

		h.UpdateStatus(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), payrollrun.StatusReviewed)
	})

	t.Run("rejects unknown status at binding", func(t *testing.T) {
		svc := &fakeRunService{}
		h := payrollrun.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/payroll-runs/x/status", strings.NewReader(`{"status":"SHIPPED"}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())

		h.UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("locked run rejects transition", func(t *testing.T) {
		svc := &fakeRunService{
			UpdateStatusFn: func(ctx context.Context, cid, aid, role, id string, req payrollrun.UpdateStatusRequest) (payrollrun.RunResponse, error) {
				return payrollrun.RunResponse{}, payrollrunerrors.ErrRunLocked
			},
		}

		h := payrollrun.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/payroll-runs/x/status", strings.NewReader(`{"status":"APPROVED"}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("company_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())
		c.Set("role", "ADMIN")

		h.UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPayrollRunHandler_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("streams workbook with attachment headers", func(t *testing.T) {
		svc := &fakeRunService{
			ExportFn: func(ctx context.Context, cid, id string) (string, []byte, error) {
				return "payroll-run-03-2026.xlsx", []byte("PK\x03\x04workbook"), nil
			},
		}

		h := payrollrun.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/payroll-runs/x/export", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("company_id", uuid.New().String())

		h.Export(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "payroll-run-03-2026.xlsx")
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	})

	t.Run("draft run is not exportable", func(t *testing.T) {
		svc := &fakeRunService{
			ExportFn: func(ctx context.Context, cid, id string) (string, []byte, error) {
				return "", nil, payrollrunerrors.ErrRunNotExportable
			},
		}

		h := payrollrun.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/payroll-runs/x/export", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("company_id", uuid.New().String())

		h.Export(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
