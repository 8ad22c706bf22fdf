package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/attendance/errors"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/employee"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/events"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/messaging/kafka"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/shared/contextutil"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, companyID string, q PeriodQuery) ([]AttendanceResponse, error)
	UpdateOne(ctx context.Context, companyID, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	BulkUpdate(ctx context.Context, companyID string, req BulkUpdateRequest) (BulkUpdateResponse, error)
	Exceptions(ctx context.Context, companyID string, q PeriodQuery) (ExceptionReport, error)
	Import(ctx context.Context, companyID, siteID, actorID string, month, year int, r io.Reader) (ImportReport, error)
	Export(ctx context.Context, companyID string, q ExportQuery) (string, []byte, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, employees: employees, outbox: outbox}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateAttendanceRequest,
) (AttendanceResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	siteUUID, err := uuid.Parse(req.SiteID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidSiteID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec := &AttendanceRecord{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		SiteID:          siteUUID,
		EmployeeID:      employeeUUID,
		PayrollMonth:    req.PayrollMonth,
		PayrollYear:     req.PayrollYear,
		WorkingDays:     req.WorkingDays,
		PresentDays:     req.PresentDays,
		PayableDays:     req.PayableDays,
		LeaveDays:       req.LeaveDays,
		NationalHoliday: req.NationalHoliday,
		OTHours:         req.OTHours,
		Incentive:       req.Incentive,
		Arrear:          req.Arrear,
		ManuallyEdited:  true,
		Active:          true,
	}

	if err := qtx.Create(ctx, rec); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*rec), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	q PeriodQuery,
) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAllBySiteAndPeriod(ctx, companyID, q.SiteID, q.PayrollMonth, q.PayrollYear)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]AttendanceResponse, len(rows))
	for i, rec := range rows {
		res[i] = mapToResponse(rec)
	}
	return res, nil
}

func (s *service) UpdateOne(
	ctx context.Context,
	companyID, id string,
	req UpdateAttendanceRequest,
) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByID(ctx, companyID, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	applyPatch(rec, req)
	rec.ManuallyEdited = true

	if err := qtx.Update(ctx, rec); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*rec), nil
}

// BulkUpdate patches every item inside its own transaction; one failing
// record is reported and the rest of the batch continues.
func (s *service) BulkUpdate(
	ctx context.Context,
	companyID string,
	req BulkUpdateRequest,
) (BulkUpdateResponse, error) {
	var res BulkUpdateResponse

	for _, item := range req.Items {
		if _, err := s.UpdateOne(ctx, companyID, item.ID, item.Patch); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, BulkItemError{ID: item.ID, Message: err.Error()})
			continue
		}
		res.Updated++
	}

	return res, nil
}

func (s *service) Exceptions(
	ctx context.Context,
	companyID string,
	q PeriodQuery,
) (ExceptionReport, error) {
	employees, err := s.employees.FindActiveBySite(ctx, companyID, q.SiteID)
	if err != nil {
		return ExceptionReport{}, err
	}

	records, err := s.repo.FindAllBySiteAndPeriod(ctx, companyID, q.SiteID, q.PayrollMonth, q.PayrollYear)
	if err != nil {
		return ExceptionReport{}, err
	}

	report := ScanExceptions(employees, records)

	contextutil.GetLogger(ctx, zap.L()).Info("attendance exceptions scanned",
		zap.String("site_id", q.SiteID),
		zap.Int("payroll_month", q.PayrollMonth),
		zap.Int("payroll_year", q.PayrollYear),
		zap.Int("total", report.Total),
	)

	return report, nil
}

// Import parses an uploaded workbook keyed by employee code and upserts the
// attendance of the period row by row with partial-failure semantics.
func (s *service) Import(
	ctx context.Context,
	companyID, siteID, actorID string,
	month, year int,
	r io.Reader,
) (ImportReport, error) {
	if _, err := uuid.Parse(siteID); err != nil {
		return ImportReport{}, attendanceerrors.ErrInvalidSiteID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ImportReport{}, attendanceerrors.ErrInvalidActorID
	}
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return ImportReport{}, attendanceerrors.ErrInvalidPeriod
	}

	rows, err := parseImportSheet(r)
	if err != nil {
		return ImportReport{}, err
	}

	var report ImportReport
	now := time.Now().UTC()

	for _, row := range rows {
		if row.EmployeeCode == "" {
			report.Failed++
			report.Errors = append(report.Errors, ImportRowError{Row: row.Row, Message: "employee code is empty"})
			continue
		}

		created, err := s.importRow(ctx, companyID, siteID, month, year, actorUUID, now, row)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, ImportRowError{Row: row.Row, Code: row.EmployeeCode, Message: err.Error()})
			continue
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	if report.Created+report.Updated > 0 {
		if err := s.publishImported(ctx, companyID, siteID, actorID, month, year, report); err != nil {
			return ImportReport{}, err
		}
	}

	contextutil.GetLogger(ctx, zap.L()).Info("attendance sheet imported",
		zap.String("site_id", siteID),
		zap.Int("payroll_month", month),
		zap.Int("payroll_year", year),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed),
	)

	return report, nil
}

func (s *service) publishImported(
	ctx context.Context,
	companyID, siteID, actorID string,
	month, year int,
	report ImportReport,
) error {
	payload, err := json.Marshal(events.AttendanceImportedEvent{
		EventType:    "attendance.imported",
		CompanyID:    companyID,
		SiteID:       siteID,
		PayrollMonth: month,
		PayrollYear:  year,
		Imported:     report.Created + report.Updated,
		Failed:       report.Failed,
		ImportedBy:   actorID,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	event := kafka.NewPendingEvent(
		contextutil.GetRequestID(ctx),
		"attendance", siteID,
		"attendance.imported", events.AttendanceImportedTopic,
		payload,
	)
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) importRow(
	ctx context.Context,
	companyID, siteID string,
	month, year int,
	actorID uuid.UUID,
	now time.Time,
	row importedRow,
) (created bool, err error) {
	emp, err := s.employees.FindByCodeAndSite(ctx, companyID, siteID, row.EmployeeCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errors.New("employee code not found at this site")
		}
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByEmployeeAndPeriod(ctx, companyID, siteID, emp.ID.String(), month, year)
	switch {
	case err == nil:
		applyImport(rec, row)
		rec.ImportedBy = &actorID
		rec.ImportedAt = &now
		if err := qtx.Update(ctx, rec); err != nil {
			return false, mapRepositoryError(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		created = true
		rec = &AttendanceRecord{
			ID:           uuid.New(),
			CompanyID:    emp.CompanyID,
			SiteID:       emp.SiteID,
			EmployeeID:   emp.ID,
			PayrollMonth: month,
			PayrollYear:  year,
			Active:       true,
			ImportedBy:   &actorID,
			ImportedAt:   &now,
		}
		applyImport(rec, row)
		if err := qtx.Create(ctx, rec); err != nil {
			return false, mapRepositoryError(err)
		}
	default:
		return false, err
	}

	return created, tx.Commit()
}

func (s *service) Export(
	ctx context.Context,
	companyID string,
	q ExportQuery,
) (string, []byte, error) {
	blank := q.Template == "blank"

	var rows []AttendanceResponse
	if blank {
		employees, err := s.employees.FindActiveBySite(ctx, companyID, q.SiteID)
		if err != nil {
			return "", nil, err
		}
		rows = make([]AttendanceResponse, len(employees))
		for i, emp := range employees {
			rows[i] = AttendanceResponse{EmployeeCode: emp.Code, EmployeeName: emp.FullName}
		}
	} else {
		var err error
		rows, err = s.GetAll(ctx, companyID, PeriodQuery{
			SiteID:       q.SiteID,
			PayrollMonth: q.PayrollMonth,
			PayrollYear:  q.PayrollYear,
		})
		if err != nil {
			return "", nil, err
		}
	}

	content, err := buildExportWorkbook(rows, blank)
	if err != nil {
		return "", nil, err
	}

	return exportFilename(q.PayrollMonth, q.PayrollYear, blank), content, nil
}

func applyPatch(rec *AttendanceRecord, req UpdateAttendanceRequest) {
	if req.WorkingDays != nil {
		rec.WorkingDays = *req.WorkingDays
	}
	if req.PresentDays != nil {
		rec.PresentDays = *req.PresentDays
	}
	if req.PayableDays != nil {
		rec.PayableDays = *req.PayableDays
	}
	if req.LeaveDays != nil {
		rec.LeaveDays = *req.LeaveDays
	}
	if req.NationalHoliday != nil {
		rec.NationalHoliday = *req.NationalHoliday
	}
	if req.OTHours != nil {
		rec.OTHours = *req.OTHours
	}
	if req.Incentive != nil {
		rec.Incentive = *req.Incentive
	}
	if req.Arrear != nil {
		rec.Arrear = *req.Arrear
	}
	if req.Active != nil {
		rec.Active = *req.Active
	}
}

func applyImport(rec *AttendanceRecord, row importedRow) {
	rec.WorkingDays = row.WorkingDays
	rec.PresentDays = row.PresentDays
	rec.PayableDays = row.PayableDays
	rec.LeaveDays = row.LeaveDays
	rec.NationalHoliday = row.NationalHoliday
	rec.OTHours = row.OTHours
	rec.Incentive = row.Incentive
	rec.Arrear = row.Arrear
	rec.ManuallyEdited = false
}

func mapToResponse(rec AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{
		ID:              rec.ID.String(),
		CompanyID:       rec.CompanyID.String(),
		SiteID:          rec.SiteID.String(),
		EmployeeID:      rec.EmployeeID.String(),
		PayrollMonth:    rec.PayrollMonth,
		PayrollYear:     rec.PayrollYear,
		WorkingDays:     rec.WorkingDays,
		PresentDays:     rec.PresentDays,
		PayableDays:     rec.PayableDays,
		LeaveDays:       rec.LeaveDays,
		NationalHoliday: rec.NationalHoliday,
		OTHours:         rec.OTHours,
		Incentive:       rec.Incentive,
		Arrear:          rec.Arrear,
		ManuallyEdited:  rec.ManuallyEdited,
		Active:          rec.Active,
	}

	if rec.Employee != nil {
		resp.EmployeeCode = rec.Employee.Code
		resp.EmployeeName = rec.Employee.FullName
	}
	if rec.ImportedBy != nil {
		v := rec.ImportedBy.String()
		resp.ImportedBy = &v
	}
	if rec.ImportedAt != nil {
		v := rec.ImportedAt.Format(time.RFC3339)
		resp.ImportedAt = &v
	}

	return resp
}
