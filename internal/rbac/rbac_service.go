package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/domain"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(companyID string) error
	Enforce(req domain.EnforceRequest) (bool, error)
	ListPermissions() ([]domain.PermissionResponse, error)
}

// service owns the single process-wide enforcer. Every company's policies
// live side by side in it, keyed by the dom term, so loading one tenant
// never disturbs another. Concurrent loads for the same company collapse
// through the singleflight group.
type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	loaded   map[string]bool
	loads    singleflight.Group
}

func NewService(repo Repository, enforcer *casbin.Enforcer) Service {
	return &service{
		repo:     repo,
		enforcer: enforcer,
		loaded:   make(map[string]bool),
	}
}

// LoadCompanyPolicy replaces one company's rules in the shared enforcer.
func (s *service) LoadCompanyPolicy(companyID string) error {
	_, err, _ := s.loads.Do(companyID, func() (any, error) {
		return nil, s.reloadCompanyPolicy(companyID)
	})
	return err
}

func (s *service) ensureCompanyPolicy(companyID string) error {
	s.mu.Lock()
	done := s.loaded[companyID]
	s.mu.Unlock()
	if done {
		return nil
	}
	return s.LoadCompanyPolicy(companyID)
}

func (s *service) reloadCompanyPolicy(companyID string) error {
	employeeRoles, err := s.repo.GetEmployeeRoles(companyID)
	if err != nil {
		return err
	}

	rolePerms, err := s.repo.GetRolePermissions(companyID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// dom sits at index 2 of g and index 1 of p in the model; only this
	// company's rows are swapped out.
	if _, err := s.enforcer.RemoveFilteredGroupingPolicy(2, companyID); err != nil {
		return err
	}
	if _, err := s.enforcer.RemoveFilteredPolicy(1, companyID); err != nil {
		return err
	}

	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID, companyID); err != nil {
			return err
		}
	}

	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, companyID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.loaded[companyID] = true

	zap.L().Debug("rbac policy loaded",
		zap.String("company_id", companyID),
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if err := s.ensureCompanyPolicy(req.CompanyID); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(
		req.EmployeeID,
		req.CompanyID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		return false, err
	}

	zap.L().Debug("rbac enforce",
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", req.CompanyID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}

func (s *service) ListPermissions() ([]domain.PermissionResponse, error) {
	rows, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}

	res := make([]domain.PermissionResponse, len(rows))
	for i, row := range rows {
		res[i] = domain.PermissionResponse{
			ID:       row.ID,
			Resource: row.Resource,
			Action:   row.Action,
			Label:    row.Label,
			Category: row.Category,
		}
	}
	return res, nil
}
