package payrollrunerrors

import (
	"net/http"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidSiteID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid site id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrDuplicateRun = apperror.New(
		apperror.CodeConflict,
		"a payroll run already exists for this site and period",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"requested status is not the legal next state for this run",
		http.StatusBadRequest,
	)
	ErrRunLocked = apperror.New(
		apperror.CodeInvalidState,
		"a locked payroll run cannot change state",
		http.StatusBadRequest,
	)
	ErrTransitionForbidden = apperror.New(
		apperror.CodeForbidden,
		"your role may not perform this status transition",
		http.StatusForbidden,
	)
	ErrRunNotExportable = apperror.New(
		apperror.CodeInvalidState,
		"payroll run must be APPROVED or LOCKED before export",
		http.StatusBadRequest,
	)
	ErrDeleteOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"a payroll run can only be deleted while status is DRAFT",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run status filter",
		http.StatusBadRequest,
	)
)
