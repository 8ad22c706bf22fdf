package payrollrun

import (
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/domain"
	payrollrunerrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/payrollrun/errors"
)

const (
	StatusDraft    = "DRAFT"
	StatusReviewed = "REVIEWED"
	StatusApproved = "APPROVED"
	StatusLocked   = "LOCKED"
)

// nextStatus is the single legal successor of each state. LOCKED is
// terminal and has no entry.
var nextStatus = map[string]string{
	StatusDraft:    StatusReviewed,
	StatusReviewed: StatusApproved,
	StatusApproved: StatusLocked,
}

// transitionRoles gates each target state. HR can push a run to review but
// never approve or lock it.
var transitionRoles = map[string][]string{
	StatusReviewed: {domain.RoleHR, domain.RoleAdmin, domain.RoleSuperAdmin},
	StatusApproved: {domain.RoleAdmin, domain.RoleSuperAdmin},
	StatusLocked:   {domain.RoleAdmin, domain.RoleSuperAdmin},
}

// ValidateTransition rejects anything but the single legal next state.
func ValidateTransition(current, target string) error {
	if current == StatusLocked {
		return payrollrunerrors.ErrRunLocked
	}
	if nextStatus[current] != target {
		return payrollrunerrors.ErrInvalidStatusTransition
	}
	return nil
}

// RoleMayTransition reports whether the role is allowed to move a run into
// the target state.
func RoleMayTransition(role, target string) bool {
	for _, allowed := range transitionRoles[target] {
		if role == allowed {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusReviewed, StatusApproved, StatusLocked:
		return true
	}
	return false
}

// Exportable reports whether the template engine may render this run.
func Exportable(status string) bool {
	return status == StatusApproved || status == StatusLocked
}
