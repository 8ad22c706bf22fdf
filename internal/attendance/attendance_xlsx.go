package attendance

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	attendanceerrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/attendance/errors"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/shared/numeric"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/shared/workbook"
)

const sheetName = "Attendance"

var exportHeaders = []string{
	"Employee Code",
	"Employee Name",
	"Working Days",
	"Present Days",
	"Payable Days",
	"Leave Days",
	"National Holiday",
	"OT Hours",
	"Incentive",
	"Arrear",
}

// importedRow is one parsed line of an uploaded attendance sheet. Numeric
// cells go through the zero-coercion policy; only the employee code is hard
// required.
type importedRow struct {
	Row             int
	EmployeeCode    string
	WorkingDays     float64
	PresentDays     float64
	PayableDays     float64
	LeaveDays       float64
	NationalHoliday float64
	OTHours         float64
	Incentive       float64
	Arrear          float64
}

// parseImportSheet reads the first sheet of an uploaded workbook. The header
// row must contain an employee code column; every other column is matched by
// name and optional.
func parseImportSheet(r io.Reader) ([]importedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, attendanceerrors.ErrNotXlsx
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, attendanceerrors.ErrEmptyImportFile
	}

	colIdx := headerIndex(rows[0])
	codeCol, ok := colIdx["employee code"]
	if !ok {
		return nil, attendanceerrors.ErrEmployeeCodeColumnMissing
	}

	cell := func(row []string, name string) string {
		idx, ok := colIdx[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	parsed := make([]importedRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		code := ""
		if codeCol < len(row) {
			code = strings.TrimSpace(row[codeCol])
		}

		parsed = append(parsed, importedRow{
			Row:             i + 2, // 1-based, after the header
			EmployeeCode:    code,
			WorkingDays:     numeric.FloatOrZero(cell(row, "working days")),
			PresentDays:     numeric.FloatOrZero(cell(row, "present days")),
			PayableDays:     numeric.FloatOrZero(cell(row, "payable days")),
			LeaveDays:       numeric.FloatOrZero(cell(row, "leave days")),
			NationalHoliday: numeric.FloatOrZero(cell(row, "national holiday")),
			OTHours:         numeric.FloatOrZero(cell(row, "ot hours")),
			Incentive:       numeric.FloatOrZero(cell(row, "incentive")),
			Arrear:          numeric.FloatOrZero(cell(row, "arrear")),
		})
	}

	return parsed, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key != "" {
			idx[key] = i
		}
	}
	return idx
}

// buildExportWorkbook renders the attendance input sheet. Blank mode keeps
// the employee rows but leaves every count empty so the file doubles as an
// entry template.
func buildExportWorkbook(rows []AttendanceResponse, blank bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	headerStyle, err := workbook.HeaderStyle(f)
	if err != nil {
		return nil, err
	}
	numberStyle, err := workbook.NumberStyle(f)
	if err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		f.SetCellValue(sheetName, workbook.Cell(i, 1), h)
	}
	f.SetCellStyle(sheetName, workbook.Cell(0, 1), workbook.Cell(len(exportHeaders)-1, 1), headerStyle)
	f.SetColWidth(sheetName, "A", "B", 22)

	for i, rec := range rows {
		rowNo := i + 2
		f.SetCellValue(sheetName, workbook.Cell(0, rowNo), rec.EmployeeCode)
		f.SetCellValue(sheetName, workbook.Cell(1, rowNo), rec.EmployeeName)
		if blank {
			continue
		}
		values := []float64{
			rec.WorkingDays, rec.PresentDays, rec.PayableDays, rec.LeaveDays,
			rec.NationalHoliday, rec.OTHours, rec.Incentive, rec.Arrear,
		}
		for j, v := range values {
			f.SetCellValue(sheetName, workbook.Cell(j+2, rowNo), v)
		}
		f.SetCellStyle(sheetName, workbook.Cell(8, rowNo), workbook.Cell(9, rowNo), numberStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportFilename(month, year int, blank bool) string {
	kind := "attendance"
	if blank {
		kind = "attendance-template"
	}
	return fmt.Sprintf("%s-%02d-%d.xlsx", kind, month, year)
}
