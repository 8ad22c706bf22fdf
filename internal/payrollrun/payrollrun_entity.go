package payrollrun

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PayrollRun is the aggregate root: one computed payroll per site and
// period. After creation only the state machine touches it, and only the
// status and audit columns.
type PayrollRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_run_company_status"`
	// The period uniqueness is partial so a soft-deleted draft frees its
	// slot for re-aggregation.
	SiteID uuid.UUID `gorm:"type:uuid;not null;index:uq_payroll_run_period,unique,where:deleted_at IS NULL"`

	PayrollMonth int `gorm:"not null;index:uq_payroll_run_period,unique,where:deleted_at IS NULL"`
	PayrollYear  int `gorm:"not null;index:uq_payroll_run_period,unique,where:deleted_at IS NULL"`

	Status string `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_run_company_status"`

	// Settings used for the run, frozen at aggregation time.
	ActiveDeploymentsOnly bool `gorm:"not null;default:true"`
	AutoStatutory         bool `gorm:"not null;default:true"`
	SkipExceptions        bool `gorm:"not null;default:false"`
	ApplyRounding         bool `gorm:"not null;default:true"`

	TotalGross      int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductions int64 `gorm:"type:bigint;not null;default:0"`
	TotalNet        int64 `gorm:"type:bigint;not null;default:0"`
	EmployeeCount   int   `gorm:"not null;default:0"`
	ExceptionCount  int   `gorm:"not null;default:0"`

	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt *time.Time
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	LockedBy   *uuid.UUID `gorm:"type:uuid"`
	LockedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Results []PayrollResult `gorm:"foreignKey:RunID"`
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

// PayrollResult is the immutable per-employee snapshot inside a run. It
// stores both the attendance counts it was computed from and every derived
// amount, so the run stays reproducible after master data drifts.
type PayrollResult struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeCode string    `gorm:"type:varchar(40);not null"`
	EmployeeName string    `gorm:"type:varchar(160);not null"`
	Designation  string    `gorm:"type:varchar(120)"`

	// Attendance snapshot
	WorkingDays     float64 `gorm:"type:numeric(5,2);not null;default:0"`
	PresentDays     float64 `gorm:"type:numeric(5,2);not null;default:0"`
	PayableDays     float64 `gorm:"type:numeric(5,2);not null;default:0"`
	LeaveDays       float64 `gorm:"type:numeric(5,2);not null;default:0"`
	NationalHoliday float64 `gorm:"type:numeric(5,2);not null;default:0"`
	OTHours         float64 `gorm:"type:numeric(6,2);not null;default:0"`

	// Computed amounts
	BasicEarned          int64 `gorm:"type:bigint;not null;default:0"`
	HRAEarned            int64 `gorm:"type:bigint;not null;default:0"`
	OtherAllowanceEarned int64 `gorm:"type:bigint;not null;default:0"`
	LeaveEarnings        int64 `gorm:"type:bigint;not null;default:0"`
	BonusEarnings        int64 `gorm:"type:bigint;not null;default:0"`
	Arrear               int64 `gorm:"type:bigint;not null;default:0"`
	Incentive            int64 `gorm:"type:bigint;not null;default:0"`
	TotalEarning         int64 `gorm:"type:bigint;not null;default:0"`
	GrossEarning         int64 `gorm:"type:bigint;not null;default:0"`
	PFDeduction          int64 `gorm:"type:bigint;not null;default:0"`
	ESIDeduction         int64 `gorm:"type:bigint;not null;default:0"`
	OtherDeductions      int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductions      int64 `gorm:"type:bigint;not null;default:0"`
	NetPay               int64 `gorm:"type:bigint;not null;default:0"`

	CreatedAt time.Time
}

func (PayrollResult) TableName() string {
	return "payroll_results"
}
