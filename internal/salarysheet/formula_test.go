package salarysheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/salarysheet"
	salarysheeterrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/salarysheet/errors"
)

func TestParseFormula_Render(t *testing.T) {
	cases := []struct {
		name      string
		sourceKey string
		row       int
		want      string
	}{
		{"simple addition", "{B}+{C}", 2, "=B2+C2"},
		{"different row", "{B}+{C}", 17, "=B17+C17"},
		{"parentheses and constant", "({D}-{E})*0.5", 3, "=(D3-E3)*0.5"},
		{"literal only", "100", 5, "=100"},
		{"leading literal", "SUM({F})", 4, "=SUM(F4)"},
		{"two letter column", "{AA}*2", 9, "=AA9*2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := salarysheet.ParseFormula(tc.sourceKey)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, f.Render(tc.row))
		})
	}
}

func TestParseFormula_References(t *testing.T) {
	f, err := salarysheet.ParseFormula("{B}+{C}-{B}")
	assert.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "B"}, f.References())
}

func TestParseFormula_Invalid(t *testing.T) {
	for _, sourceKey := range []string{"{B", "B}", "{}+{C}", "{B}+{C"} {
		_, err := salarysheet.ParseFormula(sourceKey)
		assert.ErrorIs(t, err, salarysheeterrors.ErrInvalidFormula, sourceKey)
	}
}

func TestRenderFilename(t *testing.T) {
	assert.Equal(t, "salary-Mar-2026-s1.xlsx",
		salarysheet.RenderFilename("salary-{MMM}-{YYYY}-{SITE}", 3, 2026, "s1"))
	assert.Equal(t, "sheet-03-2026.xlsx",
		salarysheet.RenderFilename("sheet-{MM}-{YYYY}.xlsx", 3, 2026, "s1"))
	// Empty pattern falls back and keeps the extension.
	assert.Equal(t, "salary-sheet-12-2025.xlsx",
		salarysheet.RenderFilename("", 12, 2025, "s1"))
}
