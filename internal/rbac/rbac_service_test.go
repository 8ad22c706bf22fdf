package rbac_test

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/domain"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/rbac"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/rbac/infra"
)

type fakeRbacRepository struct {
	employeeRolesFn   func(companyID string) ([]rbac.EmployeeRole, error)
	rolePermissionsFn func(companyID string) ([]rbac.RolePermission, error)
}

func (f *fakeRbacRepository) GetEmployeeRoles(companyID string) ([]rbac.EmployeeRole, error) {
	return f.employeeRolesFn(companyID)
}

func (f *fakeRbacRepository) GetRolePermissions(companyID string) ([]rbac.RolePermission, error) {
	return f.rolePermissionsFn(companyID)
}

func (f *fakeRbacRepository) ListPermissions() ([]rbac.PermissionRow, error) {
	return nil, nil
}

func tenantRepo() *fakeRbacRepository {
	return &fakeRbacRepository{
		employeeRolesFn: func(companyID string) ([]rbac.EmployeeRole, error) {
			return []rbac.EmployeeRole{{EmployeeID: "emp-" + companyID, RoleID: "hr-" + companyID}}, nil
		},
		rolePermissionsFn: func(companyID string) ([]rbac.RolePermission, error) {
			return []rbac.RolePermission{
				{RoleID: "hr-" + companyID, Resource: "payroll_run", Action: "read"},
			}, nil
		},
	}
}

func newTestService(t *testing.T, repo rbac.Repository) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer(filepath.Join("infra", "model.conf"))
	require.NoError(t, err)
	return rbac.NewService(repo, enforcer)
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t, tenantRepo())

	allowed, err := svc.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-company-a",
		CompanyID:  "company-a",
		Resource:   "payroll_run",
		Action:     "read",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-company-a",
		CompanyID:  "company-a",
		Resource:   "payroll_run",
		Action:     "delete",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestRBACService_Enforce_ConcurrentTenants(t *testing.T) {
	svc := newTestService(t, tenantRepo())

	var denied int64
	var wg sync.WaitGroup

	for _, companyID := range []string{"company-a", "company-b"} {
		wg.Add(1)
		go func(companyID string) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				allowed, err := svc.Enforce(domain.EnforceRequest{
					EmployeeID: "emp-" + companyID,
					CompanyID:  companyID,
					Resource:   "payroll_run",
					Action:     "read",
				})
				if err != nil || !allowed {
					atomic.AddInt64(&denied, 1)
				}
			}
		}(companyID)
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt64(&denied),
		"a granted permission was denied while another tenant loaded")
}

func TestRBACService_LoadCompanyPolicy_ReloadKeepsOtherTenants(t *testing.T) {
	repo := tenantRepo()
	svc := newTestService(t, repo)

	for _, companyID := range []string{"company-a", "company-b"} {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: "emp-" + companyID,
			CompanyID:  companyID,
			Resource:   "payroll_run",
			Action:     "read",
		})
		require.NoError(t, err)
		require.True(t, allowed)
	}

	// Revoke company-a's read and reload only that tenant.
	repo.rolePermissionsFn = func(companyID string) ([]rbac.RolePermission, error) {
		return nil, nil
	}
	require.NoError(t, svc.LoadCompanyPolicy("company-a"))

	allowed, err := svc.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-company-a",
		CompanyID:  "company-a",
		Resource:   "payroll_run",
		Action:     "read",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-company-b",
		CompanyID:  "company-b",
		Resource:   "payroll_run",
		Action:     "read",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)
}
