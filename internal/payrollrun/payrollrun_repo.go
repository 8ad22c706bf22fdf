package payrollrun

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/tenant"
)

//go:generate mockgen -source=payrollrun_repo.go -destination=mock/payrollrun_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, run *PayrollRun) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRun, error)
	FindAllByCompany(ctx context.Context, companyID string, filter GetRunsFilterRequest) ([]PayrollRun, error)
	FindExportable(ctx context.Context, companyID string) ([]PayrollRun, error)
	UpdateStatusFields(ctx context.Context, run *PayrollRun) error
	SoftDelete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Results", func(db *gorm.DB) *gorm.DB {
			return db.Order("employee_code ASC")
		}).
		First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter GetRunsFilterRequest) ([]PayrollRun, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID))

	if filter.SiteID != "" {
		db = db.Where("site_id = ?", filter.SiteID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var runs []PayrollRun
	err := db.
		Order("payroll_year DESC, payroll_month DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindExportable(ctx context.Context, companyID string) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status IN ?", []string{StatusApproved, StatusLocked}).
		Order("payroll_year DESC, payroll_month DESC").
		Find(&runs).Error
	return runs, err
}

// UpdateStatusFields persists the status and audit columns only; result
// rows are immutable once written.
func (r *repository) UpdateStatusFields(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).
		Model(&PayrollRun{}).
		Where("id = ?", run.ID).
		Select(
			"status",
			"reviewed_by", "reviewed_at",
			"approved_by", "approved_at",
			"locked_by", "locked_at",
			"updated_at",
		).
		Updates(run).Error
}

func (r *repository) SoftDelete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&PayrollRun{}, "id = ?", id).Error
}
