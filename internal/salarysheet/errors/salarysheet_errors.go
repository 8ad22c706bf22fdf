package salarysheeterrors

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
	ErrInvalidTemplateID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid template id",
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
	ErrTemplateNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary sheet template not found",
		http.StatusNotFound,
	)
	ErrDuplicateTemplateName = apperror.New(
		apperror.CodeConflict,
		"a template with this name already exists",
		http.StatusConflict,
	)
	ErrNoActiveColumns = apperror.New(
		apperror.CodeInvalidState,
		"template has no active column mappings",
		http.StatusBadRequest,
	)
	ErrInvalidFormula = apperror.New(
		apperror.CodeInvalidInput,
		"formula source key has unbalanced braces",
		http.StatusBadRequest,
	)
)
