package app

import (
	"gorm.io/gorm"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/attendance"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/employee"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/payrollrun"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/ratecard"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/salarysheet"
)

// modelRegistry is the process-wide list of persisted models, registered
// once at startup. Schema setup runs against this list and nowhere else.
var modelRegistry = []any{
	&employee.Employee{},
	&ratecard.SalaryStructure{},
	&ratecard.StructureDeduction{},
	&attendance.AttendanceRecord{},
	&payrollrun.PayrollRun{},
	&payrollrun.PayrollResult{},
	&salarysheet.SalarySheetTemplate{},
	&salarysheet.ColumnMapping{},
}

func migrateModels(db *gorm.DB) error {
	return db.AutoMigrate(modelRegistry...)
}
