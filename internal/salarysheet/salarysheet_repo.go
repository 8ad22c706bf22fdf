package salarysheet

import (
	"context"

	"gorm.io/gorm"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/tenant"
)

//go:generate mockgen -source=salarysheet_repo.go -destination=mock/salarysheet_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, tpl *SalarySheetTemplate) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalarySheetTemplate, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]SalarySheetTemplate, error)
	Update(ctx context.Context, tpl *SalarySheetTemplate) error
	SoftDelete(ctx context.Context, companyID, id string) error
	ReplaceColumns(ctx context.Context, templateID string, columns []ColumnMapping) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tpl *SalarySheetTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalarySheetTemplate, error) {
	var tpl SalarySheetTemplate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&tpl, "id = ?", id).Error
	return &tpl, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]SalarySheetTemplate, error) {
	var tpls []SalarySheetTemplate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&tpls).Error
	return tpls, err
}

func (r *repository) Update(ctx context.Context, tpl *SalarySheetTemplate) error {
	return r.db.WithContext(ctx).Save(tpl).Error
}

func (r *repository) SoftDelete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&SalarySheetTemplate{}, "id = ?", id).Error
}

// ReplaceColumns swaps the whole column list atomically; partial column
// edits go through this too, with the caller sending the full new list.
func (r *repository) ReplaceColumns(ctx context.Context, templateID string, columns []ColumnMapping) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateID).Delete(&ColumnMapping{}).Error; err != nil {
			return err
		}
		if len(columns) == 0 {
			return nil
		}
		return tx.Create(&columns).Error
	})
}
