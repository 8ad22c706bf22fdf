package numeric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/shared/numeric"
)

func TestCoerceOrZero_DirtyInputBecomesZero(t *testing.T) {
	cases := []any{nil, "", "  ", "abc", math.NaN(), math.Inf(1), (*float64)(nil), (*string)(nil), struct{}{}}
	for _, c := range cases {
		assert.True(t, numeric.CoerceOrZero(c).IsZero(), "case %#v", c)
	}
}

func TestCoerceOrZero_ValidInput(t *testing.T) {
	assert.Equal(t, "12.5", numeric.CoerceOrZero("12.5").String())
	assert.Equal(t, "7", numeric.CoerceOrZero(7).String())
	assert.Equal(t, "-3", numeric.CoerceOrZero(int64(-3)).String())

	v := 4.25
	assert.Equal(t, "4.25", numeric.CoerceOrZero(&v).String())
}

func TestFloatOrZero(t *testing.T) {
	assert.Equal(t, 0.0, numeric.FloatOrZero("not-a-number"))
	assert.Equal(t, 8.5, numeric.FloatOrZero("8.5"))
}
