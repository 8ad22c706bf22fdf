package attendance

type PeriodQuery struct {
	SiteID       string `form:"site" binding:"required,uuid"`
	PayrollMonth int    `form:"payrollMonth" binding:"required,min=1,max=12"`
	PayrollYear  int    `form:"payrollYear" binding:"required,min=2000,max=2100"`
}

type ExportQuery struct {
	SiteID       string `form:"site" binding:"required,uuid"`
	PayrollMonth int    `form:"payrollMonth" binding:"required,min=1,max=12"`
	PayrollYear  int    `form:"payrollYear" binding:"required,min=2000,max=2100"`
	Template     string `form:"template" binding:"omitempty,oneof=blank filled"`
}

type CreateAttendanceRequest struct {
	EmployeeID      string   `json:"employee_id" binding:"required,uuid"`
	SiteID          string   `json:"site_id" binding:"required,uuid"`
	PayrollMonth    int      `json:"payroll_month" binding:"required,min=1,max=12"`
	PayrollYear     int      `json:"payroll_year" binding:"required,min=2000,max=2100"`
	WorkingDays     float64  `json:"working_days"`
	PresentDays     float64  `json:"present_days"`
	PayableDays     float64  `json:"payable_days"`
	LeaveDays       float64  `json:"leave_days"`
	NationalHoliday float64  `json:"national_holiday"`
	OTHours         float64  `json:"ot_hours"`
	Incentive       float64  `json:"incentive"`
	Arrear          float64  `json:"arrear"`
}

// UpdateAttendanceRequest patches individual counts; nil leaves a field
// untouched. Any successful patch marks the record manually edited.
type UpdateAttendanceRequest struct {
	WorkingDays     *float64 `json:"working_days"`
	PresentDays     *float64 `json:"present_days"`
	PayableDays     *float64 `json:"payable_days"`
	LeaveDays       *float64 `json:"leave_days"`
	NationalHoliday *float64 `json:"national_holiday"`
	OTHours         *float64 `json:"ot_hours"`
	Incentive       *float64 `json:"incentive"`
	Arrear          *float64 `json:"arrear"`
	Active          *bool    `json:"active"`
}

type BulkUpdateItem struct {
	ID    string                  `json:"id" binding:"required,uuid"`
	Patch UpdateAttendanceRequest `json:"patch"`
}

type BulkUpdateRequest struct {
	Items []BulkUpdateItem `json:"items" binding:"required,min=1,dive"`
}

type BulkItemError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// BulkUpdateResponse carries partial-failure results: one bad record never
// aborts the batch.
type BulkUpdateResponse struct {
	Updated int             `json:"updated"`
	Failed  int             `json:"failed"`
	Errors  []BulkItemError `json:"errors"`
}

type AttendanceResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	SiteID          string  `json:"site_id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeCode    string  `json:"employee_code,omitempty"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	PayrollMonth    int     `json:"payroll_month"`
	PayrollYear     int     `json:"payroll_year"`
	WorkingDays     float64 `json:"working_days"`
	PresentDays     float64 `json:"present_days"`
	PayableDays     float64 `json:"payable_days"`
	LeaveDays       float64 `json:"leave_days"`
	NationalHoliday float64 `json:"national_holiday"`
	OTHours         float64 `json:"ot_hours"`
	Incentive       float64 `json:"incentive"`
	Arrear          float64 `json:"arrear"`
	ManuallyEdited  bool    `json:"manually_edited"`
	Active          bool    `json:"active"`
	ImportedBy      *string `json:"imported_by,omitempty"`
	ImportedAt      *string `json:"imported_at,omitempty"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Code    string `json:"employee_code,omitempty"`
	Message string `json:"message"`
}

type ImportReport struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors"`
}

type ExceptionItem struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Detail       string `json:"detail"`
}

// ExceptionReport is advisory: it informs a reviewer, it never blocks a run.
type ExceptionReport struct {
	MissingBankDetails     []ExceptionItem `json:"missing_bank_details"`
	MissingStatutoryInfo   []ExceptionItem `json:"missing_statutory_info"`
	NoAttendance           []ExceptionItem `json:"no_attendance"`
	NonPositivePayableDays []ExceptionItem `json:"non_positive_payable_days"`
	OutlierOvertime        []ExceptionItem `json:"outlier_overtime"`
	Total                  int             `json:"total"`
}
