package payrollrun

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/attendance"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/employee"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/events"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/messaging/kafka"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/paycalc"
	payrollrunerrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/payrollrun/errors"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/ratecard"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/shared/contextutil"
)

//go:generate mockgen -source=payrollrun_service.go -destination=mock/payrollrun_service_mock.go -package=mock
type Service interface {
	Aggregate(ctx context.Context, companyID, actorID string, req CreateRunRequest) (RunResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetRunsFilterRequest) ([]RunResponse, error)
	GetByID(ctx context.Context, companyID, id string) (RunResponse, error)
	UpdateStatus(ctx context.Context, companyID, actorID, role, id string, req UpdateStatusRequest) (RunResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Export(ctx context.Context, companyID, id string) (string, []byte, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	employees   employee.Repository
	attendances attendance.Repository
	ratecards   ratecard.Repository
	outbox      kafka.OutboxRepository
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	attendances attendance.Repository,
	ratecards ratecard.Repository,
	outbox kafka.OutboxRepository,
) Service {
	return &service{
		db:          db,
		repo:        repo,
		employees:   employees,
		attendances: attendances,
		ratecards:   ratecards,
		outbox:      outbox,
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// Aggregate computes one payroll result per employee at the site and
// persists the run with its results in a single transaction. An employee
// without an attendance row still gets a result, with every amount zero.
func (s *service) Aggregate(
	ctx context.Context,
	companyID, actorID string,
	req CreateRunRequest,
) (RunResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RunResponse{}, payrollrunerrors.ErrInvalidCompanyID
	}
	siteUUID, err := uuid.Parse(req.SiteID)
	if err != nil {
		return RunResponse{}, payrollrunerrors.ErrInvalidSiteID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunResponse{}, payrollrunerrors.ErrInvalidActorID
	}

	run := &PayrollRun{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		SiteID:       siteUUID,
		PayrollMonth: req.PayrollMonth,
		PayrollYear:  req.PayrollYear,
		Status:       StatusDraft,
		CreatedBy:    actorUUID,

		ActiveDeploymentsOnly: boolOr(req.Settings.ActiveDeploymentsOnly, true),
		AutoStatutory:         boolOr(req.Settings.AutoStatutory, true),
		SkipExceptions:        boolOr(req.Settings.SkipExceptions, false),
		ApplyRounding:         boolOr(req.Settings.ApplyRounding, true),
	}

	var employees []employee.Employee
	if run.ActiveDeploymentsOnly {
		employees, err = s.employees.FindActiveBySite(ctx, companyID, req.SiteID)
	} else {
		employees, err = s.employees.FindAllBySite(ctx, companyID, req.SiteID)
	}
	if err != nil {
		return RunResponse{}, err
	}

	records, err := s.attendances.FindAllBySiteAndPeriod(ctx, companyID, req.SiteID, req.PayrollMonth, req.PayrollYear)
	if err != nil {
		return RunResponse{}, err
	}
	byEmployee := make(map[uuid.UUID]attendance.AttendanceRecord, len(records))
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = rec
	}

	if !run.SkipExceptions {
		report := attendance.ScanExceptions(employees, records)
		run.ExceptionCount = report.Total
	}

	// The rate card in force on the last day of the period wins.
	periodEnd := time.Date(req.PayrollYear, time.Month(req.PayrollMonth)+1, 0, 0, 0, 0, 0, time.UTC)

	for _, emp := range employees {
		rec, hasAttendance := byEmployee[emp.ID]
		result, err := s.computeResult(ctx, run, emp, rec, hasAttendance, periodEnd)
		if err != nil {
			return RunResponse{}, err
		}

		run.Results = append(run.Results, result)
		run.TotalGross += result.GrossEarning
		run.TotalDeductions += result.TotalDeductions
		run.TotalNet += result.NetPay
	}
	run.EmployeeCount = len(run.Results)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, run); err != nil {
		return RunResponse{}, mapRepositoryError(err)
	}

	payload, err := json.Marshal(events.PayrollRunCreatedEvent{
		EventType:      "payroll_run.created",
		RunID:          run.ID.String(),
		CompanyID:      companyID,
		SiteID:         req.SiteID,
		PayrollMonth:   req.PayrollMonth,
		PayrollYear:    req.PayrollYear,
		EmployeeCount:  run.EmployeeCount,
		ExceptionCount: run.ExceptionCount,
		CreatedBy:      actorID,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return RunResponse{}, err
	}

	event := kafka.NewPendingEvent(
		contextutil.GetRequestID(ctx),
		"payroll_run", run.ID.String(),
		"payroll_run.created", events.PayrollRunCreatedTopic,
		payload,
	)
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		return RunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RunResponse{}, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, zap.L()).Info("payroll run aggregated",
		zap.String("run_id", run.ID.String()),
		zap.String("site_id", req.SiteID),
		zap.Int("payroll_month", req.PayrollMonth),
		zap.Int("payroll_year", req.PayrollYear),
		zap.Int("employee_count", run.EmployeeCount),
		zap.Int("exception_count", run.ExceptionCount),
	)

	return mapRunToResponse(*run, true), nil
}

func (s *service) computeResult(
	ctx context.Context,
	run *PayrollRun,
	emp employee.Employee,
	rec attendance.AttendanceRecord,
	hasAttendance bool,
	periodEnd time.Time,
) (PayrollResult, error) {
	in := paycalc.Inputs{}

	structure, err := s.ratecards.FindEffective(ctx, emp.CompanyID.String(), emp.ID.String(), periodEnd)
	switch {
	case err == nil:
		in.Basic = structure.Basic
		in.HRA = structure.HRA
		in.OtherAllowance = structure.OtherAllowance
		in.LeaveRate = structure.LeaveRate
		in.BonusRate = structure.BonusRate
		for _, d := range structure.Deductions {
			in.Deductions = append(in.Deductions, paycalc.DeductionLine{Name: d.Name, Amount: d.Amount})
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No rate card: every amount computes to zero.
	default:
		return PayrollResult{}, err
	}

	if hasAttendance {
		in.PresentDays = rec.PresentDays
		in.NationalHoliday = rec.NationalHoliday
		in.ExplicitPayableDays = rec.PayableDays
		in.LeaveDays = rec.LeaveDays
		in.OTHours = rec.OTHours
		in.ExplicitIncentive = rec.Incentive
		in.Arrear = rec.Arrear
	}

	bd := paycalc.Compute(in, paycalc.Options{AutoStatutory: run.AutoStatutory})

	// Per-employee statutory enrollment gates each deduction on top of the
	// run-level flag.
	if !emp.PFApplicable && bd.PF > 0 {
		bd.TotalDeductions -= bd.PF
		bd.NetPay += bd.PF
		bd.PF = 0
	}
	if !emp.ESIApplicable && bd.ESI > 0 {
		bd.TotalDeductions -= bd.ESI
		bd.NetPay += bd.ESI
		bd.ESI = 0
	}

	var otherDeductions int64
	for _, line := range bd.OtherDeductions {
		otherDeductions += line.Amount
	}

	result := PayrollResult{
		ID:           uuid.New(),
		RunID:        run.ID,
		CompanyID:    run.CompanyID,
		EmployeeID:   emp.ID,
		EmployeeCode: emp.Code,
		EmployeeName: emp.FullName,
		Designation:  emp.Designation,

		PayableDays: bd.PayableDays,

		BasicEarned:          bd.BasicEarned,
		HRAEarned:            bd.HRAEarned,
		OtherAllowanceEarned: bd.OtherAllowanceEarned,
		LeaveEarnings:        bd.LeaveEarnings,
		BonusEarnings:        bd.BonusEarnings,
		Arrear:               bd.Arrear,
		Incentive:            bd.Incentive,
		TotalEarning:         bd.TotalEarning,
		GrossEarning:         bd.Gross,
		PFDeduction:          bd.PF,
		ESIDeduction:         bd.ESI,
		OtherDeductions:      otherDeductions,
		TotalDeductions:      bd.TotalDeductions,
		NetPay:               bd.NetPay,
	}

	if hasAttendance {
		result.WorkingDays = rec.WorkingDays
		result.PresentDays = rec.PresentDays
		result.LeaveDays = rec.LeaveDays
		result.NationalHoliday = rec.NationalHoliday
		result.OTHours = rec.OTHours
	}

	return result, nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter GetRunsFilterRequest,
) ([]RunResponse, error) {
	runs, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]RunResponse, len(runs))
	for i, run := range runs {
		res[i] = mapRunToResponse(run, false)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (RunResponse, error) {
	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return RunResponse{}, mapRepositoryError(err)
	}
	return mapRunToResponse(*run, true), nil
}

// UpdateStatus advances a run along DRAFT -> REVIEWED -> APPROVED ->
// LOCKED. The state machine rejects skips and anything out of a locked
// run; the role gate rejects approvals and locks from HR.
func (s *service) UpdateStatus(
	ctx context.Context,
	companyID, actorID, role, id string,
	req UpdateStatusRequest,
) (RunResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunResponse{}, payrollrunerrors.ErrInvalidActorID
	}

	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return RunResponse{}, mapRepositoryError(err)
	}

	if err := ValidateTransition(run.Status, req.Status); err != nil {
		return RunResponse{}, err
	}
	if !RoleMayTransition(role, req.Status) {
		return RunResponse{}, payrollrunerrors.ErrTransitionForbidden
	}

	fromStatus := run.Status
	now := time.Now().UTC()
	run.Status = req.Status

	switch req.Status {
	case StatusReviewed:
		run.ReviewedBy = &actorUUID
		run.ReviewedAt = &now
	case StatusApproved:
		run.ApprovedBy = &actorUUID
		run.ApprovedAt = &now
	case StatusLocked:
		run.LockedBy = &actorUUID
		run.LockedAt = &now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdateStatusFields(ctx, run); err != nil {
		return RunResponse{}, mapRepositoryError(err)
	}

	payload, err := json.Marshal(events.PayrollRunStatusChangedEvent{
		EventType:    "payroll_run.status_changed",
		RunID:        run.ID.String(),
		CompanyID:    companyID,
		SiteID:       run.SiteID.String(),
		PayrollMonth: run.PayrollMonth,
		PayrollYear:  run.PayrollYear,
		FromStatus:   fromStatus,
		ToStatus:     req.Status,
		ChangedBy:    actorID,
		OccurredAt:   now,
	})
	if err != nil {
		return RunResponse{}, err
	}

	event := kafka.NewPendingEvent(
		contextutil.GetRequestID(ctx),
		"payroll_run", run.ID.String(),
		"payroll_run.status_changed", events.PayrollRunStatusChangedTopic,
		payload,
	)
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		return RunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}

	contextutil.GetLogger(ctx, zap.L()).Info("payroll run status changed",
		zap.String("run_id", run.ID.String()),
		zap.String("from", fromStatus),
		zap.String("to", req.Status),
		zap.String("actor_id", actorID),
		zap.String("role", role),
	)

	return mapRunToResponse(*run, true), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if run.Status != StatusDraft {
		return payrollrunerrors.ErrDeleteOnlyDraft
	}

	if err := s.repo.SoftDelete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) Export(ctx context.Context, companyID, id string) (string, []byte, error) {
	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return "", nil, mapRepositoryError(err)
	}

	if !Exportable(run.Status) {
		return "", nil, payrollrunerrors.ErrRunNotExportable
	}

	content, err := buildRunWorkbook(*run)
	if err != nil {
		return "", nil, err
	}

	return runExportFilename(*run), content, nil
}

func mapRunToResponse(run PayrollRun, includeResults bool) RunResponse {
	res := RunResponse{
		ID:           run.ID.String(),
		CompanyID:    run.CompanyID.String(),
		SiteID:       run.SiteID.String(),
		PayrollMonth: run.PayrollMonth,
		PayrollYear:  run.PayrollYear,
		Status:       run.Status,

		ActiveDeploymentsOnly: run.ActiveDeploymentsOnly,
		AutoStatutory:         run.AutoStatutory,
		SkipExceptions:        run.SkipExceptions,
		ApplyRounding:         run.ApplyRounding,

		TotalGross:      run.TotalGross,
		TotalDeductions: run.TotalDeductions,
		TotalNet:        run.TotalNet,
		EmployeeCount:   run.EmployeeCount,
		ExceptionCount:  run.ExceptionCount,

		CreatedBy: run.CreatedBy.String(),
	}

	setActor := func(by *uuid.UUID, at *time.Time, bySlot, atSlot **string) {
		if by != nil {
			v := by.String()
			*bySlot = &v
		}
		if at != nil {
			v := at.Format(time.RFC3339)
			*atSlot = &v
		}
	}
	setActor(run.ReviewedBy, run.ReviewedAt, &res.ReviewedBy, &res.ReviewedAt)
	setActor(run.ApprovedBy, run.ApprovedAt, &res.ApprovedBy, &res.ApprovedAt)
	setActor(run.LockedBy, run.LockedAt, &res.LockedBy, &res.LockedAt)

	if includeResults {
		res.Results = make([]ResultResponse, len(run.Results))
		for i, row := range run.Results {
			res.Results[i] = mapResultToResponse(row)
		}
	}

	return res
}

func mapResultToResponse(row PayrollResult) ResultResponse {
	return ResultResponse{
		ID:           row.ID.String(),
		EmployeeID:   row.EmployeeID.String(),
		EmployeeCode: row.EmployeeCode,
		EmployeeName: row.EmployeeName,
		Designation:  row.Designation,

		WorkingDays:     row.WorkingDays,
		PresentDays:     row.PresentDays,
		PayableDays:     row.PayableDays,
		LeaveDays:       row.LeaveDays,
		NationalHoliday: row.NationalHoliday,
		OTHours:         row.OTHours,

		BasicEarned:          row.BasicEarned,
		HRAEarned:            row.HRAEarned,
		OtherAllowanceEarned: row.OtherAllowanceEarned,
		LeaveEarnings:        row.LeaveEarnings,
		BonusEarnings:        row.BonusEarnings,
		Arrear:               row.Arrear,
		Incentive:            row.Incentive,
		TotalEarning:         row.TotalEarning,
		GrossEarning:         row.GrossEarning,
		PFDeduction:          row.PFDeduction,
		ESIDeduction:         row.ESIDeduction,
		OtherDeductions:      row.OtherDeductions,
		TotalDeductions:      row.TotalDeductions,
		NetPay:               row.NetPay,
	}
}
