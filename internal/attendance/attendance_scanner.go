package attendance

import (
	"fmt"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/employee"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/paycalc"
)

// OutlierOTHours is the overtime threshold above which a record is flagged
// for review.
const OutlierOTHours = 50

// ScanExceptions walks the active employees of a site and their attendance
// for one period and reports data-quality problems in five independent
// categories. An employee with no attendance record lands only in
// NoAttendance; the days-based checks are skipped for them.
func ScanExceptions(employees []employee.Employee, records []AttendanceRecord) ExceptionReport {
	byEmployee := make(map[string]*AttendanceRecord, len(records))
	for i := range records {
		rec := &records[i]
		if !rec.Active {
			continue
		}
		byEmployee[rec.EmployeeID.String()] = rec
	}

	var report ExceptionReport

	for _, emp := range employees {
		item := ExceptionItem{
			EmployeeID:   emp.ID.String(),
			EmployeeCode: emp.Code,
			EmployeeName: emp.FullName,
		}

		if missing := missingBankFields(emp); missing != "" {
			item.Detail = "missing " + missing
			report.MissingBankDetails = append(report.MissingBankDetails, item)
		}

		if detail := missingStatutoryInfo(emp); detail != "" {
			item.Detail = detail
			report.MissingStatutoryInfo = append(report.MissingStatutoryInfo, item)
		}

		rec, ok := byEmployee[emp.ID.String()]
		if !ok {
			item.Detail = "no attendance record for the period"
			report.NoAttendance = append(report.NoAttendance, item)
			continue
		}

		days := paycalc.PayableDays(rec.PresentDays, rec.NationalHoliday, rec.PayableDays)
		if !days.IsPositive() {
			item.Detail = fmt.Sprintf("payable days resolve to %s", days.String())
			report.NonPositivePayableDays = append(report.NonPositivePayableDays, item)
		}

		if rec.OTHours > OutlierOTHours {
			item.Detail = fmt.Sprintf("%.1f overtime hours exceed the %d hour threshold", rec.OTHours, OutlierOTHours)
			report.OutlierOvertime = append(report.OutlierOvertime, item)
		}
	}

	report.Total = len(report.MissingBankDetails) +
		len(report.MissingStatutoryInfo) +
		len(report.NoAttendance) +
		len(report.NonPositivePayableDays) +
		len(report.OutlierOvertime)

	return report
}

func missingBankFields(emp employee.Employee) string {
	missing := ""
	appendMissing := func(name string, v *string) {
		if v == nil || *v == "" {
			if missing != "" {
				missing += ", "
			}
			missing += name
		}
	}
	appendMissing("bank name", emp.BankName)
	appendMissing("account number", emp.AccountNumber)
	appendMissing("IFSC", emp.IFSC)
	return missing
}

func missingStatutoryInfo(emp employee.Employee) string {
	empty := func(v *string) bool { return v == nil || *v == "" }

	if emp.PFApplicable && empty(emp.UAN) && empty(emp.PFNumber) {
		return "PF applicable but neither UAN nor PF number on file"
	}
	if emp.ESIApplicable && empty(emp.ESICode) {
		return "ESI applicable but no ESI code on file"
	}
	return ""
}
