package salarysheet

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/employee"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/payrollrun"
	payrollrunerrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/payrollrun/errors"
	salarysheeterrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/salarysheet/errors"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/shared/contextutil"
)

//go:generate mockgen -source=salarysheet_service.go -destination=mock/salarysheet_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateTemplateRequest) (TemplateResponse, error)
	GetAll(ctx context.Context, companyID string) ([]TemplateResponse, error)
	GetByID(ctx context.Context, companyID, id string) (TemplateResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateTemplateRequest) (TemplateResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	ListColumns(ctx context.Context, companyID, id string) ([]ColumnResponse, error)
	ReplaceColumns(ctx context.Context, companyID, id string, req ReplaceColumnsRequest) (TemplateResponse, error)
	Generate(ctx context.Context, companyID string, req GenerateRequest) (string, []byte, error)
	ListApprovedRuns(ctx context.Context, companyID string) ([]ApprovedRunResponse, error)
}

type service struct {
	repo      Repository
	runs      payrollrun.Repository
	employees employee.Repository
}

func NewService(repo Repository, runs payrollrun.Repository, employees employee.Repository) Service {
	return &service{repo: repo, runs: runs, employees: employees}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateTemplateRequest,
) (TemplateResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return TemplateResponse{}, salarysheeterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TemplateResponse{}, salarysheeterrors.ErrInvalidActorID
	}

	tpl := &SalarySheetTemplate{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		Name:            req.Name,
		FilenamePattern: req.FilenamePattern,
		Active:          true,
		CreatedBy:       actorUUID,
	}
	if tpl.FilenamePattern == "" {
		tpl.FilenamePattern = "salary-sheet-{MM}-{YYYY}.xlsx"
	}
	if req.SiteID != "" {
		siteUUID, err := uuid.Parse(req.SiteID)
		if err != nil {
			return TemplateResponse{}, salarysheeterrors.ErrInvalidSiteID
		}
		tpl.SiteID = &siteUUID
	}

	columns, err := buildColumns(tpl.ID, companyUUID, req.Columns)
	if err != nil {
		return TemplateResponse{}, err
	}
	tpl.Columns = columns

	if err := s.repo.Create(ctx, tpl); err != nil {
		return TemplateResponse{}, mapRepositoryError(err)
	}

	return mapTemplateToResponse(*tpl, true), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]TemplateResponse, error) {
	tpls, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]TemplateResponse, len(tpls))
	for i, tpl := range tpls {
		res[i] = mapTemplateToResponse(tpl, false)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TemplateResponse, error) {
	tpl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TemplateResponse{}, mapRepositoryError(err)
	}
	return mapTemplateToResponse(*tpl, true), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateTemplateRequest,
) (TemplateResponse, error) {
	tpl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TemplateResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.FilenamePattern != nil {
		tpl.FilenamePattern = *req.FilenamePattern
	}
	if req.Active != nil {
		tpl.Active = *req.Active
	}

	if err := s.repo.Update(ctx, tpl); err != nil {
		return TemplateResponse{}, mapRepositoryError(err)
	}

	return mapTemplateToResponse(*tpl, true), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.SoftDelete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) ListColumns(ctx context.Context, companyID, id string) ([]ColumnResponse, error) {
	tpl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]ColumnResponse, len(tpl.Columns))
	for i, col := range tpl.Columns {
		res[i] = mapColumnToResponse(col)
	}
	return res, nil
}

func (s *service) ReplaceColumns(
	ctx context.Context,
	companyID, id string,
	req ReplaceColumnsRequest,
) (TemplateResponse, error) {
	tpl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TemplateResponse{}, mapRepositoryError(err)
	}

	columns, err := buildColumns(tpl.ID, tpl.CompanyID, req.Columns)
	if err != nil {
		return TemplateResponse{}, err
	}

	if err := s.repo.ReplaceColumns(ctx, id, columns); err != nil {
		return TemplateResponse{}, mapRepositoryError(err)
	}

	tpl.Columns = columns
	return mapTemplateToResponse(*tpl, true), nil
}

// Generate renders the chosen run through the chosen template. Runs still
// in DRAFT or REVIEWED are refused.
func (s *service) Generate(
	ctx context.Context,
	companyID string,
	req GenerateRequest,
) (string, []byte, error) {
	tpl, err := s.repo.FindByIDAndCompany(ctx, companyID, req.TemplateID)
	if err != nil {
		return "", nil, mapRepositoryError(err)
	}

	run, err := s.runs.FindByIDAndCompany(ctx, companyID, req.PayrollRunID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, payrollrunerrors.ErrRunNotFound
		}
		return "", nil, err
	}
	if !payrollrun.Exportable(run.Status) {
		return "", nil, payrollrunerrors.ErrRunNotExportable
	}

	siteEmployees, err := s.employees.FindAllBySite(ctx, companyID, run.SiteID.String())
	if err != nil {
		return "", nil, err
	}
	byID := make(map[uuid.UUID]employee.Employee, len(siteEmployees))
	for _, emp := range siteEmployees {
		byID[emp.ID] = emp
	}

	content, err := RenderSheet(*tpl, *run, byID, req.ExportType)
	if err != nil {
		return "", nil, err
	}

	filename := RenderFilename(tpl.FilenamePattern, run.PayrollMonth, run.PayrollYear, siteToken(run.SiteID))

	contextutil.GetLogger(ctx, zap.L()).Info("salary sheet generated",
		zap.String("template_id", req.TemplateID),
		zap.String("run_id", req.PayrollRunID),
		zap.String("export_type", req.ExportType),
		zap.String("filename", filename),
	)

	return filename, content, nil
}

func (s *service) ListApprovedRuns(ctx context.Context, companyID string) ([]ApprovedRunResponse, error) {
	runs, err := s.runs.FindExportable(ctx, companyID)
	if err != nil {
		return nil, err
	}

	res := make([]ApprovedRunResponse, len(runs))
	for i, run := range runs {
		res[i] = ApprovedRunResponse{
			ID:            run.ID.String(),
			SiteID:        run.SiteID.String(),
			PayrollMonth:  run.PayrollMonth,
			PayrollYear:   run.PayrollYear,
			Status:        run.Status,
			EmployeeCount: run.EmployeeCount,
			TotalNet:      run.TotalNet,
		}
	}
	return res, nil
}

// buildColumns validates and materializes column inputs. FORMULA source
// keys are parsed here so a broken template fails at save, not at
// generation.
func buildColumns(templateID, companyID uuid.UUID, inputs []ColumnInput) ([]ColumnMapping, error) {
	columns := make([]ColumnMapping, 0, len(inputs))
	for _, in := range inputs {
		if in.SourceType == SourceFormula {
			if _, err := ParseFormula(in.SourceKey); err != nil {
				return nil, err
			}
		}

		rounding := in.Rounding
		if rounding == "" {
			rounding = RoundingNone
		}
		active := true
		if in.Active != nil {
			active = *in.Active
		}

		columns = append(columns, ColumnMapping{
			ID:           uuid.New(),
			TemplateID:   templateID,
			CompanyID:    companyID,
			Order:        in.Order,
			Header:       in.Header,
			DataType:     in.DataType,
			SourceType:   in.SourceType,
			SourceKey:    in.SourceKey,
			Rounding:     rounding,
			DefaultValue: in.DefaultValue,
			Active:       active,
		})
	}
	return columns, nil
}

// siteToken is the {SITE} filename substitution. The site master lives in
// the organizational service, so the short id stands in for a code.
func siteToken(siteID uuid.UUID) string {
	return siteID.String()[:8]
}

func mapTemplateToResponse(tpl SalarySheetTemplate, includeColumns bool) TemplateResponse {
	res := TemplateResponse{
		ID:              tpl.ID.String(),
		CompanyID:       tpl.CompanyID.String(),
		Name:            tpl.Name,
		FilenamePattern: tpl.FilenamePattern,
		Active:          tpl.Active,
	}
	if tpl.SiteID != nil {
		v := tpl.SiteID.String()
		res.SiteID = &v
	}
	if includeColumns {
		res.Columns = make([]ColumnResponse, len(tpl.Columns))
		for i, col := range tpl.Columns {
			res.Columns[i] = mapColumnToResponse(col)
		}
	}
	return res
}

func mapColumnToResponse(col ColumnMapping) ColumnResponse {
	return ColumnResponse{
		ID:           col.ID.String(),
		Order:        col.Order,
		Header:       col.Header,
		DataType:     col.DataType,
		SourceType:   col.SourceType,
		SourceKey:    col.SourceKey,
		Rounding:     col.Rounding,
		DefaultValue: col.DefaultValue,
		Active:       col.Active,
	}
}
