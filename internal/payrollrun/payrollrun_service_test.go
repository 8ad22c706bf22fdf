package payrollrun_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/attendance"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/domain"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/employee"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/messaging/kafka"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/payrollrun"
	payrollrunerrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/payrollrun/errors"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/ratecard"
)

type fakeRunRepository struct {
	withTxFn             func(tx *sql.Tx) payrollrun.Repository
	createFn             func(ctx context.Context, run *payrollrun.PayrollRun) error
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*payrollrun.PayrollRun, error)
	findAllByCompanyFn   func(ctx context.Context, companyID string, filter payrollrun.GetRunsFilterRequest) ([]payrollrun.PayrollRun, error)
	findExportableFn     func(ctx context.Context, companyID string) ([]payrollrun.PayrollRun, error)
	updateStatusFieldsFn func(ctx context.Context, run *payrollrun.PayrollRun) error
	softDeleteFn         func(ctx context.Context, companyID, id string) error
}

func (f *fakeRunRepository) WithTx(tx *sql.Tx) payrollrun.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRunRepository) Create(ctx context.Context, run *payrollrun.PayrollRun) error {
	if f.createFn != nil {
		return f.createFn(ctx, run)
	}
	return nil
}

func (f *fakeRunRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payrollrun.PayrollRun, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRunRepository) FindAllByCompany(ctx context.Context, companyID string, filter payrollrun.GetRunsFilterRequest) ([]payrollrun.PayrollRun, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeRunRepository) FindExportable(ctx context.Context, companyID string) ([]payrollrun.PayrollRun, error) {
	if f.findExportableFn != nil {
		return f.findExportableFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeRunRepository) UpdateStatusFields(ctx context.Context, run *payrollrun.PayrollRun) error {
	if f.updateStatusFieldsFn != nil {
		return f.updateStatusFieldsFn(ctx, run)
	}
	return nil
}

func (f *fakeRunRepository) SoftDelete(ctx context.Context, companyID, id string) error {
	if f.softDeleteFn != nil {
		return f.softDeleteFn(ctx, companyID, id)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findActiveBySiteFn func(ctx context.Context, companyID, siteID string) ([]employee.Employee, error)
	findAllBySiteFn    func(ctx context.Context, companyID, siteID string) ([]employee.Employee, error)
}

func (f *fakeEmployeeRepository) FindActiveBySite(ctx context.Context, companyID, siteID string) ([]employee.Employee, error) {
	if f.findActiveBySiteFn != nil {
		return f.findActiveBySiteFn(ctx, companyID, siteID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindAllBySite(ctx context.Context, companyID, siteID string) ([]employee.Employee, error) {
	if f.findAllBySiteFn != nil {
		return f.findAllBySiteFn(ctx, companyID, siteID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByCodeAndSite(ctx context.Context, companyID, siteID, code string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeAttendanceRepository struct {
	findAllBySiteAndPeriodFn func(ctx context.Context, companyID, siteID string, month, year int) ([]attendance.AttendanceRecord, error)
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceRepository) Create(ctx context.Context, rec *attendance.AttendanceRecord) error {
	return nil
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, rec *attendance.AttendanceRecord) error {
	return nil
}

func (f *fakeAttendanceRepository) FindByID(ctx context.Context, companyID, id string) (*attendance.AttendanceRecord, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindByEmployeeAndPeriod(ctx context.Context, companyID, siteID, employeeID string, month, year int) (*attendance.AttendanceRecord, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindAllBySiteAndPeriod(ctx context.Context, companyID, siteID string, month, year int) ([]attendance.AttendanceRecord, error) {
	if f.findAllBySiteAndPeriodFn != nil {
		return f.findAllBySiteAndPeriodFn(ctx, companyID, siteID, month, year)
	}
	return nil, nil
}

type fakeRatecardRepository struct {
	findEffectiveFn func(ctx context.Context, companyID, employeeID string, at time.Time) (*ratecard.SalaryStructure, error)
}

func (f *fakeRatecardRepository) FindEffective(ctx context.Context, companyID, employeeID string, at time.Time) (*ratecard.SalaryStructure, error) {
	if f.findEffectiveFn != nil {
		return f.findEffectiveFn(ctx, companyID, employeeID, at)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRatecardRepository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]ratecard.SalaryStructure, error) {
	return nil, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error

	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type runServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     payrollrun.Service
	repo        *fakeRunRepository
	employees   *fakeEmployeeRepository
	attendances *fakeAttendanceRepository
	ratecards   *fakeRatecardRepository
	outbox      *fakeOutboxRepository
}

func setupRunServiceTest(t *testing.T) *runServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	deps := &runServiceDeps{
		db:          db,
		sqlMock:     sqlMock,
		repo:        &fakeRunRepository{},
		employees:   &fakeEmployeeRepository{},
		attendances: &fakeAttendanceRepository{},
		ratecards:   &fakeRatecardRepository{},
		outbox:      &fakeOutboxRepository{},
	}
	deps.service = payrollrun.NewService(db, deps.repo, deps.employees, deps.attendances, deps.ratecards, deps.outbox)

	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func strPtr(v string) *string { return &v }

func TestRunService_Aggregate(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	siteID := uuid.New()
	actorID := uuid.New().String()

	empWithAttendance := employee.Employee{
		ID: uuid.New(), CompanyID: companyID, SiteID: siteID,
		Code: "EMP001", FullName: "Asha Verma", Designation: "Supervisor",
		BankName: strPtr("SBI"), AccountNumber: strPtr("123"), IFSC: strPtr("SBIN0001"),
		UAN: strPtr("100200300400"), PFNumber: strPtr("PF/001"), ESICode: strPtr("ESI/001"),
		PFApplicable: true, ESIApplicable: true, Active: true,
	}
	empNoAttendance := employee.Employee{
		ID: uuid.New(), CompanyID: companyID, SiteID: siteID,
		Code: "EMP002", FullName: "Ravi Kumar",
		PFApplicable: true, ESIApplicable: true, Active: true,
	}

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.employees.findActiveBySiteFn = func(ctx context.Context, cid, sid string) ([]employee.Employee, error) {
		return []employee.Employee{empWithAttendance, empNoAttendance}, nil
	}
	deps.attendances.findAllBySiteAndPeriodFn = func(ctx context.Context, cid, sid string, month, year int) ([]attendance.AttendanceRecord, error) {
		return []attendance.AttendanceRecord{{
			ID: uuid.New(), CompanyID: companyID, SiteID: siteID, EmployeeID: empWithAttendance.ID,
			PayrollMonth: month, PayrollYear: year,
			WorkingDays: 26, PresentDays: 26, Active: true,
		}}, nil
	}
	deps.ratecards.findEffectiveFn = func(ctx context.Context, cid, eid string, at time.Time) (*ratecard.SalaryStructure, error) {
		if eid == empWithAttendance.ID.String() {
			return &ratecard.SalaryStructure{Basic: 26000, HRA: 5000}, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.Aggregate(ctx, companyID.String(), actorID, payrollrun.CreateRunRequest{
		SiteID:       siteID.String(),
		PayrollMonth: 3,
		PayrollYear:  2026,
	})

	assert.NoError(t, err)
	assert.Equal(t, payrollrun.StatusDraft, resp.Status)
	assert.Equal(t, 2, resp.EmployeeCount)
	assert.Len(t, resp.Results, 2)

	// Defaults applied when no settings were sent.
	assert.True(t, resp.ActiveDeploymentsOnly)
	assert.True(t, resp.AutoStatutory)
	assert.False(t, resp.SkipExceptions)

	first := resp.Results[0]
	assert.Equal(t, "EMP001", first.EmployeeCode)
	assert.Equal(t, float64(26), first.PayableDays)
	assert.Equal(t, int64(26000), first.BasicEarned)
	assert.Equal(t, int64(5000), first.HRAEarned)
	assert.Equal(t, int64(31000), first.GrossEarning)
	assert.Equal(t, int64(3120), first.PFDeduction)
	assert.Equal(t, int64(0), first.ESIDeduction)
	assert.Equal(t, int64(27880), first.NetPay)

	// No attendance row means a zeroed result, never a missing one.
	second := resp.Results[1]
	assert.Equal(t, "EMP002", second.EmployeeCode)
	assert.Equal(t, float64(0), second.PayableDays)
	assert.Equal(t, int64(0), second.GrossEarning)
	assert.Equal(t, int64(0), second.NetPay)

	assert.Equal(t, int64(31000), resp.TotalGross)
	assert.Equal(t, int64(3120), resp.TotalDeductions)
	assert.Equal(t, int64(27880), resp.TotalNet)

	// EMP002 has no attendance and missing bank details, so the scanner
	// found something.
	assert.Greater(t, resp.ExceptionCount, 0)

	assert.Len(t, deps.outbox.events, 1)
	assert.Equal(t, "payroll_run.created", deps.outbox.events[0].EventType)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRunService_Aggregate_StatutoryFlags(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	siteID := uuid.New()

	emp := employee.Employee{
		ID: uuid.New(), CompanyID: companyID, SiteID: siteID,
		Code: "EMP010", FullName: "Meena Joshi",
		PFApplicable: false, ESIApplicable: false, Active: true,
	}

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.employees.findActiveBySiteFn = func(ctx context.Context, cid, sid string) ([]employee.Employee, error) {
		return []employee.Employee{emp}, nil
	}
	deps.attendances.findAllBySiteAndPeriodFn = func(ctx context.Context, cid, sid string, month, year int) ([]attendance.AttendanceRecord, error) {
		return []attendance.AttendanceRecord{{
			ID: uuid.New(), CompanyID: companyID, SiteID: siteID, EmployeeID: emp.ID,
			PayrollMonth: month, PayrollYear: year, PresentDays: 26, Active: true,
		}}, nil
	}
	deps.ratecards.findEffectiveFn = func(ctx context.Context, cid, eid string, at time.Time) (*ratecard.SalaryStructure, error) {
		return &ratecard.SalaryStructure{Basic: 15000}, nil
	}

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.Aggregate(ctx, companyID.String(), uuid.New().String(), payrollrun.CreateRunRequest{
		SiteID:       siteID.String(),
		PayrollMonth: 3,
		PayrollYear:  2026,
	})

	assert.NoError(t, err)
	result := resp.Results[0]

	// Not enrolled: nothing withheld even though the run computes statutory.
	assert.Equal(t, int64(0), result.PFDeduction)
	assert.Equal(t, int64(0), result.ESIDeduction)
	assert.Equal(t, int64(15000), result.NetPay)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRunService_Aggregate_DuplicatePeriod(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	siteID := uuid.New()

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.repo.createFn = func(ctx context.Context, run *payrollrun.PayrollRun) error {
		return errors.New(`ERROR: duplicate key value violates unique constraint "uq_payroll_run_period" (SQLSTATE 23505)`)
	}

	expectTx(t, deps.sqlMock, false)

	_, err := deps.service.Aggregate(ctx, companyID.String(), uuid.New().String(), payrollrun.CreateRunRequest{
		SiteID:       siteID.String(),
		PayrollMonth: 3,
		PayrollYear:  2026,
	})

	assert.ErrorIs(t, err, payrollrunerrors.ErrDuplicateRun)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRunService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	runID := uuid.New()
	actorID := uuid.New().String()

	findDraft := func(ctx context.Context, cid, id string) (*payrollrun.PayrollRun, error) {
		return &payrollrun.PayrollRun{
			ID: runID, CompanyID: companyID, SiteID: uuid.New(),
			PayrollMonth: 3, PayrollYear: 2026,
			Status: payrollrun.StatusDraft, CreatedBy: uuid.MustParse(actorID),
		}, nil
	}

	t.Run("hr reviews a draft", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = findDraft
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.UpdateStatus(ctx, companyID.String(), actorID, domain.RoleHR, runID.String(),
			payrollrun.UpdateStatusRequest{Status: payrollrun.StatusReviewed})

		assert.NoError(t, err)
		assert.Equal(t, payrollrun.StatusReviewed, resp.Status)
		assert.NotNil(t, resp.ReviewedBy)
		assert.NotNil(t, resp.ReviewedAt)

		assert.Len(t, deps.outbox.events, 1)
		assert.Equal(t, "payroll_run.status_changed", deps.outbox.events[0].EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("hr cannot approve", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payrollrun.PayrollRun, error) {
			return &payrollrun.PayrollRun{ID: runID, CompanyID: companyID, Status: payrollrun.StatusReviewed, CreatedBy: uuid.MustParse(actorID)}, nil
		}

		_, err := deps.service.UpdateStatus(ctx, companyID.String(), actorID, domain.RoleHR, runID.String(),
			payrollrun.UpdateStatusRequest{Status: payrollrun.StatusApproved})

		assert.ErrorIs(t, err, payrollrunerrors.ErrTransitionForbidden)
	})

	t.Run("no skipping states", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = findDraft

		_, err := deps.service.UpdateStatus(ctx, companyID.String(), actorID, domain.RoleAdmin, runID.String(),
			payrollrun.UpdateStatusRequest{Status: payrollrun.StatusLocked})

		assert.ErrorIs(t, err, payrollrunerrors.ErrInvalidStatusTransition)
	})

	t.Run("locked run rejects everything", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payrollrun.PayrollRun, error) {
			return &payrollrun.PayrollRun{ID: runID, CompanyID: companyID, Status: payrollrun.StatusLocked, CreatedBy: uuid.MustParse(actorID)}, nil
		}

		_, err := deps.service.UpdateStatus(ctx, companyID.String(), actorID, domain.RoleSuperAdmin, runID.String(),
			payrollrun.UpdateStatusRequest{Status: payrollrun.StatusReviewed})

		assert.ErrorIs(t, err, payrollrunerrors.ErrRunLocked)
	})

	t.Run("admin approves a reviewed run", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payrollrun.PayrollRun, error) {
			return &payrollrun.PayrollRun{ID: runID, CompanyID: companyID, Status: payrollrun.StatusReviewed, CreatedBy: uuid.MustParse(actorID)}, nil
		}
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.UpdateStatus(ctx, companyID.String(), actorID, domain.RoleAdmin, runID.String(),
			payrollrun.UpdateStatusRequest{Status: payrollrun.StatusApproved})

		assert.NoError(t, err)
		assert.Equal(t, payrollrun.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestRunService_Delete_OnlyDraft(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	runID := uuid.New()

	t.Run("negative non-draft", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payrollrun.PayrollRun, error) {
			return &payrollrun.PayrollRun{ID: runID, CompanyID: companyID, Status: payrollrun.StatusApproved, CreatedBy: uuid.New()}, nil
		}

		err := deps.service.Delete(ctx, companyID.String(), runID.String())

		assert.ErrorIs(t, err, payrollrunerrors.ErrDeleteOnlyDraft)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupRunServiceTest(t)
		defer deps.db.Close()

		deleted := false
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payrollrun.PayrollRun, error) {
			return &payrollrun.PayrollRun{ID: runID, CompanyID: companyID, Status: payrollrun.StatusDraft, CreatedBy: uuid.New()}, nil
		}
		deps.repo.softDeleteFn = func(ctx context.Context, cid, id string) error {
			deleted = true
			return nil
		}

		err := deps.service.Delete(ctx, companyID.String(), runID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestRunService_Export_RefusesDraft(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	runID := uuid.New()

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payrollrun.PayrollRun, error) {
		return &payrollrun.PayrollRun{ID: runID, CompanyID: companyID, Status: payrollrun.StatusDraft, CreatedBy: uuid.New()}, nil
	}

	_, _, err := deps.service.Export(ctx, companyID.String(), runID.String())

	assert.ErrorIs(t, err, payrollrunerrors.ErrRunNotExportable)
}

func TestRunService_Export_ApprovedRun(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	runID := uuid.New()

	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payrollrun.PayrollRun, error) {
		return &payrollrun.PayrollRun{
			ID: runID, CompanyID: companyID, Status: payrollrun.StatusApproved, CreatedBy: uuid.New(),
			PayrollMonth: 3, PayrollYear: 2026,
			Results: []payrollrun.PayrollResult{
				{EmployeeCode: "EMP001", EmployeeName: "Asha Verma", GrossEarning: 31000, NetPay: 27880},
			},
		}, nil
	}

	filename, content, err := deps.service.Export(ctx, companyID.String(), runID.String())

	assert.NoError(t, err)
	assert.Equal(t, "payroll-run-03-2026.xlsx", filename)
	assert.NotEmpty(t, content)
}
