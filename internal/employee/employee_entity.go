package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is the master record the payroll core reads. Creation and editing
// happen in the organizational service; this side never writes it.
type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	SiteID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Code        string    `gorm:"type:varchar(40);not null;uniqueIndex:uq_employee_company_code"`
	FullName    string    `gorm:"type:varchar(160);not null"`
	Designation string    `gorm:"type:varchar(120)"`

	// Bank details
	BankName      *string `gorm:"type:varchar(120)"`
	AccountNumber *string `gorm:"type:varchar(40)"`
	IFSC          *string `gorm:"type:varchar(20)"`

	// Statutory identifiers
	UAN           *string `gorm:"type:varchar(20)"`
	PFNumber      *string `gorm:"type:varchar(30)"`
	ESICode       *string `gorm:"type:varchar(30)"`
	PFApplicable  bool    `gorm:"not null;default:false"`
	ESIApplicable bool    `gorm:"not null;default:false"`

	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
