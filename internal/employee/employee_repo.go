package employee

import (
	"context"

	"gorm.io/gorm"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/tenant"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindActiveBySite(ctx context.Context, companyID, siteID string) ([]Employee, error)
	FindAllBySite(ctx context.Context, companyID, siteID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error)
	FindByCodeAndSite(ctx context.Context, companyID, siteID, code string) (*Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveBySite(ctx context.Context, companyID, siteID string) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.SiteScope(companyID, siteID)).
		Where("active = ?", true).
		Order("code ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllBySite(ctx context.Context, companyID, siteID string) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.SiteScope(companyID, siteID)).
		Order("code ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	var row Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&row, "id = ?", id).Error
	return &row, err
}

func (r *repository) FindByCodeAndSite(ctx context.Context, companyID, siteID, code string) (*Employee, error) {
	var row Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.SiteScope(companyID, siteID)).
		First(&row, "code = ?", code).Error
	return &row, err
}
