package salarysheet

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Data types a column can carry.
const (
	DataTypeText   = "TEXT"
	DataTypeNumber = "NUMBER"
)

// Where a column's value comes from.
const (
	SourceEmployee         = "EMPLOYEE"
	SourcePayrollComponent = "PAYROLL_COMPONENT"
	SourcePayrollSummary   = "PAYROLL_SUMMARY"
	SourceFormula          = "FORMULA"
)

// Rounding policies for NUMBER columns.
const (
	RoundingNone      = "NONE"
	RoundingNearest1  = "NEAREST_1"
	RoundingNearest10 = "NEAREST_10"
)

// Export modes for generation.
const (
	ExportValuesOnly   = "VALUES_ONLY"
	ExportWithFormulas = "WITH_FORMULAS"
)

// SalarySheetTemplate is a client-defined spreadsheet layout: an ordered
// set of column mappings plus a filename pattern with {MMM} {MM} {YYYY}
// {SITE} tokens.
type SalarySheetTemplate struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Name uniqueness is partial so a deleted template frees its name.
	CompanyID uuid.UUID  `gorm:"type:uuid;not null;index:uq_template_company_name,unique,where:deleted_at IS NULL"`
	SiteID    *uuid.UUID `gorm:"type:uuid;index"`

	Name            string `gorm:"type:varchar(120);not null;index:uq_template_company_name,unique,where:deleted_at IS NULL"`
	FilenamePattern string `gorm:"type:varchar(200);not null;default:'salary-sheet-{MM}-{YYYY}.xlsx'"`
	Active          bool   `gorm:"not null;default:true"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Columns []ColumnMapping `gorm:"foreignKey:TemplateID"`
}

func (SalarySheetTemplate) TableName() string {
	return "salary_sheet_templates"
}

// ColumnMapping declares one output column: its position, header text, how
// to resolve the value for each employee row, and how to shape it.
type ColumnMapping struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`

	Order      int    `gorm:"column:position;not null"`
	Header     string `gorm:"type:varchar(120);not null"`
	DataType   string `gorm:"type:varchar(10);not null;default:'TEXT'"`
	SourceType string `gorm:"type:varchar(20);not null"`
	SourceKey  string `gorm:"type:varchar(200);not null"`

	Rounding     string `gorm:"type:varchar(12);not null;default:'NONE'"`
	DefaultValue string `gorm:"type:varchar(120)"`
	Active       bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ColumnMapping) TableName() string {
	return "salary_sheet_columns"
}
