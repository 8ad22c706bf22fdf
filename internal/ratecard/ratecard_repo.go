package ratecard

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/tenant"
)

//go:generate mockgen -source=ratecard_repo.go -destination=mock/ratecard_repo_mock.go -package=mock
type Repository interface {
	// FindEffective returns the structure in force for the employee at the
	// given date: the newest row whose effective_from is not after it.
	FindEffective(ctx context.Context, companyID, employeeID string, at time.Time) (*SalaryStructure, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]SalaryStructure, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindEffective(ctx context.Context, companyID, employeeID string, at time.Time) (*SalaryStructure, error) {
	var row SalaryStructure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("effective_from <= ?", at.Format("2006-01-02")).
		Order("effective_from DESC").
		Preload("Deductions").
		First(&row).Error
	return &row, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]SalaryStructure, error) {
	var rows []SalaryStructure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		Preload("Deductions").
		Find(&rows).Error
	return rows, err
}
