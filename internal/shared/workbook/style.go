// Package workbook holds the common excelize styling used by every
// spreadsheet the service produces.
package workbook

import "github.com/xuri/excelize/v2"

const headerFill = "4472C4" // white on blue header band

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// HeaderStyle is bold white text on a blue fill with thin borders.
func HeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorder,
	})
}

// NumberStyle formats numeric cells with a thousands separator.
func NumberStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		NumFmt: 3, // #,##0
	})
}

// TotalStyle is the bold footer row that carries column sums.
func TotalStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: 3,
		Border: thinBorder,
	})
}

// Column turns a zero-based index into a spreadsheet column letter.
func Column(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

// Cell builds an A1-style reference from a zero-based column index and a
// one-based row number.
func Cell(colIdx, row int) string {
	cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
	return cell
}
