package salarysheet

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/employee"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/payrollrun"
	salarysheeterrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/salarysheet/errors"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/shared/workbook"
)

const generatedSheetName = "Salary Sheet"

// cellValue is one resolved cell before it is written: either a number, a
// text, or a spreadsheet formula. Exactly one is set.
type cellValue struct {
	isNumber bool
	number   float64
	text     string
	formula  string
}

// RenderSheet turns an approved run into a workbook shaped by the
// template: one styled header row, one row per result in template column
// order, and a bold TOTAL row under the numeric columns.
func RenderSheet(
	tpl SalarySheetTemplate,
	run payrollrun.PayrollRun,
	employees map[uuid.UUID]employee.Employee,
	exportType string,
) ([]byte, error) {
	columns := activeColumns(tpl)
	if len(columns) == 0 {
		return nil, salarysheeterrors.ErrNoActiveColumns
	}

	formulas := make(map[int]Formula)
	for i, col := range columns {
		if col.SourceType != SourceFormula {
			continue
		}
		f, err := ParseFormula(col.SourceKey)
		if err != nil {
			return nil, err
		}
		formulas[i] = f
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), generatedSheetName)

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

	for i, col := range columns {
		f.SetCellValue(generatedSheetName, workbook.Cell(i, 1), col.Header)
	}
	f.SetCellStyle(generatedSheetName, workbook.Cell(0, 1), workbook.Cell(len(columns)-1, 1), headerStyle)

	totals := make([]float64, len(columns))
	hasTotal := make([]bool, len(columns))

	for rowIdx, result := range run.Results {
		rowNo := rowIdx + 2
		emp := employees[result.EmployeeID]

		for colIdx, col := range columns {
			cv := resolveCell(col, formulas[colIdx], result, emp, run, rowNo, exportType)
			cell := workbook.Cell(colIdx, rowNo)

			switch {
			case cv.formula != "":
				f.SetCellFormula(generatedSheetName, cell, cv.formula)
			case cv.isNumber:
				f.SetCellValue(generatedSheetName, cell, cv.number)
				totals[colIdx] += cv.number
				hasTotal[colIdx] = true
			default:
				f.SetCellValue(generatedSheetName, cell, cv.text)
			}

			if col.DataType == DataTypeNumber {
				f.SetCellStyle(generatedSheetName, cell, cell, numberStyle)
			}
		}
	}

	// The TOTAL label lands in the first column that carries no sum, so a
	// template whose first column is numeric keeps its total.
	totalRow := len(run.Results) + 2
	labelCol := -1
	for colIdx := range columns {
		if !hasTotal[colIdx] {
			labelCol = colIdx
			break
		}
	}
	if labelCol >= 0 {
		f.SetCellValue(generatedSheetName, workbook.Cell(labelCol, totalRow), "TOTAL")
	}
	for colIdx := range columns {
		if hasTotal[colIdx] {
			f.SetCellValue(generatedSheetName, workbook.Cell(colIdx, totalRow), totals[colIdx])
		}
	}
	f.SetCellStyle(generatedSheetName, workbook.Cell(0, totalRow), workbook.Cell(len(columns)-1, totalRow), totalStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func activeColumns(tpl SalarySheetTemplate) []ColumnMapping {
	columns := make([]ColumnMapping, 0, len(tpl.Columns))
	for _, col := range tpl.Columns {
		if col.Active {
			columns = append(columns, col)
		}
	}
	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Order < columns[j].Order
	})
	return columns
}

// resolveCell produces the value for one cell. A FORMULA column only emits
// a formula in WITH_FORMULAS mode; in VALUES_ONLY it falls back to the
// configured default like any unresolvable key.
func resolveCell(
	col ColumnMapping,
	formula Formula,
	result payrollrun.PayrollResult,
	emp employee.Employee,
	run payrollrun.PayrollRun,
	rowNo int,
	exportType string,
) cellValue {
	if col.SourceType == SourceFormula {
		if exportType == ExportWithFormulas {
			return cellValue{formula: formula.Render(rowNo)}
		}
		return defaultCell(col)
	}

	var (
		raw   any
		found bool
	)

	switch col.SourceType {
	case SourceEmployee:
		raw, found = employeeField(emp, col.SourceKey)
	case SourcePayrollComponent:
		raw, found = componentField(result, col.SourceKey)
	case SourcePayrollSummary:
		raw, found = summaryField(result, run, col.SourceKey)
	}

	if !found {
		return defaultCell(col)
	}

	if col.DataType == DataTypeNumber {
		n, ok := raw.(float64)
		if !ok {
			return defaultCell(col)
		}
		return cellValue{isNumber: true, number: applyRounding(col.Rounding, run.ApplyRounding, n)}
	}

	s, ok := raw.(string)
	if !ok || s == "" {
		return defaultCell(col)
	}
	return cellValue{text: s}
}

func defaultCell(col ColumnMapping) cellValue {
	if col.DataType == DataTypeNumber {
		n, err := strconv.ParseFloat(col.DefaultValue, 64)
		if err != nil {
			n = 0
		}
		return cellValue{isNumber: true, number: n}
	}
	return cellValue{text: col.DefaultValue}
}

// applyRounding shapes a NUMBER value per the column policy. Runs created
// with apply-rounding off ignore every policy.
func applyRounding(policy string, runApplies bool, v float64) float64 {
	if !runApplies {
		return v
	}
	switch policy {
	case RoundingNearest1:
		r, _ := decimal.NewFromFloat(v).Round(0).Float64()
		return r
	case RoundingNearest10:
		r, _ := decimal.NewFromFloat(v).Div(decimal.NewFromInt(10)).Round(0).Mul(decimal.NewFromInt(10)).Float64()
		return r
	default:
		return v
	}
}

// normalizeKey makes source key lookup forgiving: "Bank Name", "bank_name"
// and "bankName" resolve the same field.
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, " ", "")
	return key
}

func employeeField(emp employee.Employee, key string) (any, bool) {
	deref := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}

	switch normalizeKey(key) {
	case "code", "employeecode":
		return emp.Code, true
	case "name", "fullname", "employeename":
		return emp.FullName, true
	case "designation":
		return emp.Designation, true
	case "bankname":
		return deref(emp.BankName), true
	case "accountnumber":
		return deref(emp.AccountNumber), true
	case "ifsc":
		return deref(emp.IFSC), true
	case "uan":
		return deref(emp.UAN), true
	case "pfnumber":
		return deref(emp.PFNumber), true
	case "esicode":
		return deref(emp.ESICode), true
	}
	return nil, false
}

func componentField(result payrollrun.PayrollResult, key string) (any, bool) {
	switch normalizeKey(key) {
	case "basic", "basicearned":
		return float64(result.BasicEarned), true
	case "hra", "hraearned":
		return float64(result.HRAEarned), true
	case "otherallowance":
		return float64(result.OtherAllowanceEarned), true
	case "leave", "leaveearnings":
		return float64(result.LeaveEarnings), true
	case "bonus", "bonusearnings":
		return float64(result.BonusEarnings), true
	case "arrear":
		return float64(result.Arrear), true
	case "incentive", "otamount":
		return float64(result.Incentive), true
	case "pf", "pfdeduction":
		return float64(result.PFDeduction), true
	case "esi", "esideduction":
		return float64(result.ESIDeduction), true
	case "otherdeductions":
		return float64(result.OtherDeductions), true
	case "totalearning":
		return float64(result.TotalEarning), true
	}
	return nil, false
}

func summaryField(result payrollrun.PayrollResult, run payrollrun.PayrollRun, key string) (any, bool) {
	switch normalizeKey(key) {
	case "gross", "grossearning":
		return float64(result.GrossEarning), true
	case "netpay", "net":
		return float64(result.NetPay), true
	case "totaldeductions":
		return float64(result.TotalDeductions), true
	case "payabledays":
		return result.PayableDays, true
	case "presentdays":
		return result.PresentDays, true
	case "workingdays":
		return result.WorkingDays, true
	case "othours":
		return result.OTHours, true
	case "payrollmonth":
		return float64(run.PayrollMonth), true
	case "payrollyear":
		return float64(run.PayrollYear), true
	}
	return nil, false
}
