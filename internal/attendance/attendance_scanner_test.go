package attendance_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/attendance"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/employee"
)

func str(v string) *string { return &v }

func completeEmployee(code, name string) employee.Employee {
	return employee.Employee{
		ID: uuid.New(), CompanyID: uuid.New(), SiteID: uuid.New(),
		Code: code, FullName: name,
		BankName: str("SBI"), AccountNumber: str("12345"), IFSC: str("SBIN0001"),
		UAN: str("100200300400"), PFNumber: str("PF/001"), ESICode: str("ESI/001"),
		PFApplicable: true, ESIApplicable: true, Active: true,
	}
}

func recordFor(emp employee.Employee, present float64) attendance.AttendanceRecord {
	return attendance.AttendanceRecord{
		ID: uuid.New(), CompanyID: emp.CompanyID, SiteID: emp.SiteID, EmployeeID: emp.ID,
		PayrollMonth: 3, PayrollYear: 2026,
		PresentDays: present, Active: true,
	}
}

func TestScanExceptions_CleanData(t *testing.T) {
	emp := completeEmployee("EMP001", "Asha Verma")
	report := attendance.ScanExceptions(
		[]employee.Employee{emp},
		[]attendance.AttendanceRecord{recordFor(emp, 26)},
	)

	assert.Zero(t, report.Total)
	assert.Empty(t, report.MissingBankDetails)
	assert.Empty(t, report.NoAttendance)
}

func TestScanExceptions_NoAttendanceShortCircuits(t *testing.T) {
	// No record at all, and present days would also be zero: the employee
	// must land only in NoAttendance, never in the days-based category.
	emp := completeEmployee("EMP002", "Ravi Kumar")

	report := attendance.ScanExceptions([]employee.Employee{emp}, nil)

	assert.Len(t, report.NoAttendance, 1)
	assert.Empty(t, report.NonPositivePayableDays)
	assert.Empty(t, report.OutlierOvertime)
	assert.Equal(t, 1, report.Total)
}

func TestScanExceptions_InactiveRecordCountsAsMissing(t *testing.T) {
	emp := completeEmployee("EMP003", "Meena Joshi")
	rec := recordFor(emp, 26)
	rec.Active = false

	report := attendance.ScanExceptions([]employee.Employee{emp}, []attendance.AttendanceRecord{rec})

	assert.Len(t, report.NoAttendance, 1)
}

func TestScanExceptions_MissingBankAndStatutory(t *testing.T) {
	emp := completeEmployee("EMP004", "Sunil Patil")
	emp.BankName = nil
	emp.IFSC = str("")
	emp.UAN = nil
	emp.PFNumber = nil

	report := attendance.ScanExceptions(
		[]employee.Employee{emp},
		[]attendance.AttendanceRecord{recordFor(emp, 20)},
	)

	assert.Len(t, report.MissingBankDetails, 1)
	assert.Contains(t, report.MissingBankDetails[0].Detail, "bank name")
	assert.Contains(t, report.MissingBankDetails[0].Detail, "IFSC")

	assert.Len(t, report.MissingStatutoryInfo, 1)
	assert.Contains(t, report.MissingStatutoryInfo[0].Detail, "PF applicable")
	assert.Equal(t, 2, report.Total)
}

func TestScanExceptions_StatutoryNeedsOnlyOnePFIdentifier(t *testing.T) {
	emp := completeEmployee("EMP005", "Divya Nair")
	emp.UAN = nil // PF number still on file

	report := attendance.ScanExceptions(
		[]employee.Employee{emp},
		[]attendance.AttendanceRecord{recordFor(emp, 22)},
	)

	assert.Empty(t, report.MissingStatutoryInfo)
}

func TestScanExceptions_NonPositivePayableDays(t *testing.T) {
	emp := completeEmployee("EMP006", "Kiran Rao")
	rec := recordFor(emp, 0)

	report := attendance.ScanExceptions([]employee.Employee{emp}, []attendance.AttendanceRecord{rec})

	assert.Len(t, report.NonPositivePayableDays, 1)
	assert.Empty(t, report.NoAttendance)
}

func TestScanExceptions_ExplicitPayableDaysSuppressesZeroPresent(t *testing.T) {
	emp := completeEmployee("EMP007", "Vikram Singh")
	rec := recordFor(emp, 0)
	rec.PayableDays = 15

	report := attendance.ScanExceptions([]employee.Employee{emp}, []attendance.AttendanceRecord{rec})

	assert.Empty(t, report.NonPositivePayableDays)
}

func TestScanExceptions_OutlierOvertime(t *testing.T) {
	emp := completeEmployee("EMP008", "Pooja Shah")
	rec := recordFor(emp, 26)
	rec.OTHours = 51

	atThreshold := completeEmployee("EMP009", "Arjun Mehta")
	recAt := recordFor(atThreshold, 26)
	recAt.OTHours = 50

	report := attendance.ScanExceptions(
		[]employee.Employee{emp, atThreshold},
		[]attendance.AttendanceRecord{rec, recAt},
	)

	// Strictly above the threshold flags; exactly at it does not.
	assert.Len(t, report.OutlierOvertime, 1)
	assert.Equal(t, "EMP008", report.OutlierOvertime[0].EmployeeCode)
}
