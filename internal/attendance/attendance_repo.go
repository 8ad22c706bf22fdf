package attendance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/tenant"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *AttendanceRecord) error
	Update(ctx context.Context, rec *AttendanceRecord) error
	FindByID(ctx context.Context, companyID, id string) (*AttendanceRecord, error)
	FindByEmployeeAndPeriod(ctx context.Context, companyID, siteID, employeeID string, month, year int) (*AttendanceRecord, error)
	FindAllBySiteAndPeriod(ctx context.Context, companyID, siteID string, month, year int) ([]AttendanceRecord, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) Update(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID, siteID, employeeID string, month, year int) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.SiteScope(companyID, siteID)).
		Where("employee_id = ?", employeeID).
		Where("payroll_month = ? AND payroll_year = ?", month, year).
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindAllBySiteAndPeriod(ctx context.Context, companyID, siteID string, month, year int) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.SiteScope(companyID, siteID)).
		Where("payroll_month = ? AND payroll_year = ?", month, year).
		Preload("Employee").
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
