package attendanceerrors

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
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"payroll month must be 1-12 and payroll year a four digit year",
		http.StatusBadRequest,
	)
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrDuplicateAttendance = apperror.New(
		apperror.CodeConflict,
		"attendance already exists for this employee and period",
		http.StatusConflict,
	)
	ErrEmployeeCodeColumnMissing = apperror.New(
		apperror.CodeInvalidInput,
		"employee code column is missing from the uploaded sheet",
		http.StatusBadRequest,
	)
	ErrEmptyImportFile = apperror.New(
		apperror.CodeInvalidInput,
		"uploaded sheet contains no data rows",
		http.StatusBadRequest,
	)
	ErrNotXlsx = apperror.New(
		apperror.CodeInvalidInput,
		"only .xlsx files are allowed",
		http.StatusBadRequest,
	)
)
