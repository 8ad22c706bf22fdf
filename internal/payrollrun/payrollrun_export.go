package payrollrun

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/shared/workbook"
)

const runSheetName = "Payroll"

var runExportHeaders = []string{
	"S.No",
	"Employee Code",
	"Employee Name",
	"Designation",
	"Payable Days",
	"Basic",
	"HRA",
	"Other Allowance",
	"Leave",
	"Bonus",
	"Arrear",
	"Total Earning",
	"Incentive",
	"Gross",
	"PF",
	"ESI",
	"Other Deductions",
	"Total Deductions",
	"Net Pay",
}

// buildRunWorkbook renders the fixed register layout of an approved run:
// one row per result and a bold TOTAL row summing every amount column.
func buildRunWorkbook(run PayrollRun) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), runSheetName)

	headerStyle, err := workbook.HeaderStyle(f)
	if err != nil {
		return nil, err
	}
	numberStyle, err := workbook.NumberStyle(f)
	if err != nil {
		return nil, err
	}
	totalStyle, err := workbook.TotalStyle(f)
	if err != nil {
		return nil, err
	}

	for i, h := range runExportHeaders {
		f.SetCellValue(runSheetName, workbook.Cell(i, 1), h)
	}
	f.SetCellStyle(runSheetName, workbook.Cell(0, 1), workbook.Cell(len(runExportHeaders)-1, 1), headerStyle)
	f.SetColWidth(runSheetName, "B", "D", 22)

	lastCol := len(runExportHeaders) - 1
	var totals [14]int64

	for i, row := range run.Results {
		rowNo := i + 2
		f.SetCellValue(runSheetName, workbook.Cell(0, rowNo), i+1)
		f.SetCellValue(runSheetName, workbook.Cell(1, rowNo), row.EmployeeCode)
		f.SetCellValue(runSheetName, workbook.Cell(2, rowNo), row.EmployeeName)
		f.SetCellValue(runSheetName, workbook.Cell(3, rowNo), row.Designation)
		f.SetCellValue(runSheetName, workbook.Cell(4, rowNo), row.PayableDays)

		amounts := []int64{
			row.BasicEarned, row.HRAEarned, row.OtherAllowanceEarned,
			row.LeaveEarnings, row.BonusEarnings, row.Arrear,
			row.TotalEarning, row.Incentive, row.GrossEarning,
			row.PFDeduction, row.ESIDeduction, row.OtherDeductions,
			row.TotalDeductions, row.NetPay,
		}
		for j, v := range amounts {
			f.SetCellValue(runSheetName, workbook.Cell(j+5, rowNo), v)
			totals[j] += v
		}
		f.SetCellStyle(runSheetName, workbook.Cell(5, rowNo), workbook.Cell(lastCol, rowNo), numberStyle)
	}

	totalRow := len(run.Results) + 2
	f.SetCellValue(runSheetName, workbook.Cell(1, totalRow), "TOTAL")
	for j, v := range totals {
		f.SetCellValue(runSheetName, workbook.Cell(j+5, totalRow), v)
	}
	f.SetCellStyle(runSheetName, workbook.Cell(0, totalRow), workbook.Cell(lastCol, totalRow), totalStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func runExportFilename(run PayrollRun) string {
	return fmt.Sprintf("payroll-run-%02d-%d.xlsx", run.PayrollMonth, run.PayrollYear)
}
