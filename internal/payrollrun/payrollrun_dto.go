package payrollrun

// RunSettings arrive as pointers so absent flags can fall back to the
// conventional defaults (active-only and statutory on, skip-exceptions off).
type RunSettings struct {
	ActiveDeploymentsOnly *bool `json:"active_deployments_only"`
	AutoStatutory         *bool `json:"auto_statutory"`
	SkipExceptions        *bool `json:"skip_exceptions"`
	ApplyRounding         *bool `json:"apply_rounding"`
}

type CreateRunRequest struct {
	SiteID       string      `json:"site_id" binding:"required,uuid"`
	PayrollMonth int         `json:"payroll_month" binding:"required,min=1,max=12"`
	PayrollYear  int         `json:"payroll_year" binding:"required,min=2000,max=2100"`
	Settings     RunSettings `json:"settings"`
}

type GetRunsFilterRequest struct {
	SiteID string `form:"site" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,oneof=DRAFT REVIEWED APPROVED LOCKED"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=REVIEWED APPROVED LOCKED"`
}

type ResultResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Designation  string `json:"designation,omitempty"`

	WorkingDays     float64 `json:"working_days"`
	PresentDays     float64 `json:"present_days"`
	PayableDays     float64 `json:"payable_days"`
	LeaveDays       float64 `json:"leave_days"`
	NationalHoliday float64 `json:"national_holiday"`
	OTHours         float64 `json:"ot_hours"`

	BasicEarned          int64 `json:"basic_earned"`
	HRAEarned            int64 `json:"hra_earned"`
	OtherAllowanceEarned int64 `json:"other_allowance_earned"`
	LeaveEarnings        int64 `json:"leave_earnings"`
	BonusEarnings        int64 `json:"bonus_earnings"`
	Arrear               int64 `json:"arrear"`
	Incentive            int64 `json:"incentive"`
	TotalEarning         int64 `json:"total_earning"`
	GrossEarning         int64 `json:"gross_earning"`
	PFDeduction          int64 `json:"pf_deduction"`
	ESIDeduction         int64 `json:"esi_deduction"`
	OtherDeductions      int64 `json:"other_deductions"`
	TotalDeductions      int64 `json:"total_deductions"`
	NetPay               int64 `json:"net_pay"`
}

type RunResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	SiteID       string `json:"site_id"`
	PayrollMonth int    `json:"payroll_month"`
	PayrollYear  int    `json:"payroll_year"`
	Status       string `json:"status"`

	ActiveDeploymentsOnly bool `json:"active_deployments_only"`
	AutoStatutory         bool `json:"auto_statutory"`
	SkipExceptions        bool `json:"skip_exceptions"`
	ApplyRounding         bool `json:"apply_rounding"`

	TotalGross      int64 `json:"total_gross"`
	TotalDeductions int64 `json:"total_deductions"`
	TotalNet        int64 `json:"total_net"`
	EmployeeCount   int   `json:"employee_count"`
	ExceptionCount  int   `json:"exception_count"`

	CreatedBy  string  `json:"created_by"`
	ReviewedBy *string `json:"reviewed_by,omitempty"`
	ReviewedAt *string `json:"reviewed_at,omitempty"`
	ApprovedBy *string `json:"approved_by,omitempty"`
	ApprovedAt *string `json:"approved_at,omitempty"`
	LockedBy   *string `json:"locked_by,omitempty"`
	LockedAt   *string `json:"locked_at,omitempty"`

	Results []ResultResponse `json:"results,omitempty"`
}
