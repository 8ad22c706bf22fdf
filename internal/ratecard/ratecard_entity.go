package ratecard

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalaryStructure is the monthly rate card for one employee: the fixed
// earning rates plus any number of independently entered deduction lines
// (LWF, HWF, GTLI and similar welfare-fund items).
type SalaryStructure struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_structure_employee_effective,unique"`

	EffectiveFrom time.Time `gorm:"type:date;not null;index:idx_structure_employee_effective,unique"`

	// Monthly earning rates, currency units.
	Basic          float64 `gorm:"type:numeric(14,2);not null;default:0"`
	HRA            float64 `gorm:"type:numeric(14,2);not null;default:0"`
	OtherAllowance float64 `gorm:"type:numeric(14,2);not null;default:0"`
	LeaveRate      float64 `gorm:"type:numeric(14,2);not null;default:0"`
	BonusRate      float64 `gorm:"type:numeric(14,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Deductions []StructureDeduction `gorm:"foreignKey:StructureID"`
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}

// StructureDeduction is one configured deduction line. Each is entered
// independently, never derived from the earning side.
type StructureDeduction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StructureID uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(60);not null"`
	Amount      float64   `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (StructureDeduction) TableName() string {
	return "structure_deductions"
}
