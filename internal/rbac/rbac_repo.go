package rbac

import (
	"gorm.io/gorm"
)

type EmployeeRole struct {
	EmployeeID string
	RoleID     string
}

type RolePermission struct {
	RoleID   string
	Resource string
	Action   string
}

type PermissionRow struct {
	ID       string
	Resource string
	Action   string
	Label    string
	Category string
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetEmployeeRoles(companyID string) ([]EmployeeRole, error)
	GetRolePermissions(companyID string) ([]RolePermission, error)
	ListPermissions() ([]PermissionRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEmployeeRoles(companyID string) ([]EmployeeRole, error) {
	var rows []EmployeeRole
	err := r.db.
		Table("employee_roles").
		Select("employee_id::text, role_id::text").
		Where("company_id = ?", companyID).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) GetRolePermissions(companyID string) ([]RolePermission, error) {
	var rows []RolePermission
	err := r.db.
		Table("role_permissions rp").
		Select("rp.role_id::text, p.resource, p.action").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Where("rp.company_id = ?", companyID).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListPermissions() ([]PermissionRow, error) {
	var rows []PermissionRow
	err := r.db.
		Table("permissions").
		Select("id::text, resource, action, label, category").
		Order("category, resource, action").
		Scan(&rows).Error
	return rows, err
}
