package salarysheet_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/salarysheet"
)

// A deleted template must free its name for reuse, so the uniqueness has
// to exclude soft-deleted rows.
func TestTemplateNameIndex_ExcludesSoftDeletedRows(t *testing.T) {
	typ := reflect.TypeOf(salarysheet.SalarySheetTemplate{})

	for _, name := range []string{"CompanyID", "Name"} {
		field, ok := typ.FieldByName(name)
		require.True(t, ok, name)

		tag := field.Tag.Get("gorm")
		assert.Contains(t, tag, "uq_template_company_name", name)
		assert.Contains(t, tag, "where:deleted_at IS NULL", name)
	}
}
