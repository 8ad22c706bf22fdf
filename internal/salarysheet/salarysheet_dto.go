package salarysheet

type ColumnInput struct {
	Order        int    `json:"order" binding:"min=0"`
	Header       string `json:"header" binding:"required,max=120"`
	DataType     string `json:"data_type" binding:"required,oneof=TEXT NUMBER"`
	SourceType   string `json:"source_type" binding:"required,oneof=EMPLOYEE PAYROLL_COMPONENT PAYROLL_SUMMARY FORMULA"`
	SourceKey    string `json:"source_key" binding:"required,max=200"`
	Rounding     string `json:"rounding" binding:"omitempty,oneof=NONE NEAREST_1 NEAREST_10"`
	DefaultValue string `json:"default_value" binding:"max=120"`
	Active       *bool  `json:"active"`
}

type CreateTemplateRequest struct {
	Name            string        `json:"name" binding:"required,max=120"`
	SiteID          string        `json:"site_id" binding:"omitempty,uuid"`
	FilenamePattern string        `json:"filename_pattern" binding:"omitempty,max=200"`
	Columns         []ColumnInput `json:"columns" binding:"omitempty,dive"`
}

type UpdateTemplateRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=120"`
	FilenamePattern *string `json:"filename_pattern" binding:"omitempty,max=200"`
	Active          *bool   `json:"active"`
}

// ReplaceColumnsRequest swaps a template's full column list in one call.
type ReplaceColumnsRequest struct {
	Columns []ColumnInput `json:"columns" binding:"required,min=1,dive"`
}

type GenerateRequest struct {
	TemplateID   string `json:"template_id" binding:"required,uuid"`
	PayrollRunID string `json:"payroll_run_id" binding:"required,uuid"`
	ExportType   string `json:"export_type" binding:"required,oneof=VALUES_ONLY WITH_FORMULAS"`
}

type ColumnResponse struct {
	ID           string `json:"id"`
	Order        int    `json:"order"`
	Header       string `json:"header"`
	DataType     string `json:"data_type"`
	SourceType   string `json:"source_type"`
	SourceKey    string `json:"source_key"`
	Rounding     string `json:"rounding"`
	DefaultValue string `json:"default_value,omitempty"`
	Active       bool   `json:"active"`
}

type TemplateResponse struct {
	ID              string           `json:"id"`
	CompanyID       string           `json:"company_id"`
	SiteID          *string          `json:"site_id,omitempty"`
	Name            string           `json:"name"`
	FilenamePattern string           `json:"filename_pattern"`
	Active          bool             `json:"active"`
	Columns         []ColumnResponse `json:"columns,omitempty"`
}

// ApprovedRunResponse is the slim run listing backing the generation
// screen's run picker.
type ApprovedRunResponse struct {
	ID            string `json:"id"`
	SiteID        string `json:"site_id"`
	PayrollMonth  int    `json:"payroll_month"`
	PayrollYear   int    `json:"payroll_year"`
	Status        string `json:"status"`
	EmployeeCount int    `json:"employee_count"`
	TotalNet      int64  `json:"total_net"`
}
