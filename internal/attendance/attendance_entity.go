package attendance

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord holds the attendance counts for one employee, site and
// payroll period. Records are never physically deleted; deactivation flips
// the active flag so import provenance survives.
type AttendanceRecord struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	SiteID     uuid.UUID `gorm:"column:site_id;type:uuid;not null;index:uq_attendance_period,unique"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:uq_attendance_period,unique"`

	PayrollMonth int `gorm:"column:payroll_month;not null;index:uq_attendance_period,unique"`
	PayrollYear  int `gorm:"column:payroll_year;not null;index:uq_attendance_period,unique"`

	WorkingDays     float64 `gorm:"column:working_days;type:numeric(5,2);not null;default:0"`
	PresentDays     float64 `gorm:"column:present_days;type:numeric(5,2);not null;default:0"`
	PayableDays     float64 `gorm:"column:payable_days;type:numeric(5,2);not null;default:0"`
	LeaveDays       float64 `gorm:"column:leave_days;type:numeric(5,2);not null;default:0"`
	NationalHoliday float64 `gorm:"column:national_holiday;type:numeric(5,2);not null;default:0"`
	OTHours         float64 `gorm:"column:ot_hours;type:numeric(6,2);not null;default:0"`
	Incentive       float64 `gorm:"column:incentive;type:numeric(14,2);not null;default:0"`
	Arrear          float64 `gorm:"column:arrear;type:numeric(14,2);not null;default:0"`

	ManuallyEdited bool       `gorm:"column:manually_edited;not null;default:false"`
	ImportedBy     *uuid.UUID `gorm:"column:imported_by;type:uuid"`
	ImportedAt     *time.Time `gorm:"column:imported_at"`

	Active    bool `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code     string    `gorm:"column:code"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
