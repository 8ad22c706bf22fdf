// Package numeric holds the best-effort numeric coercion policy used by the
// payroll formulas: dirty or missing input becomes zero instead of an error.
package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceOrZero converts an arbitrary value to a decimal, treating anything
// unparseable (nil, empty string, garbage text, NaN/Inf) as zero. Payroll
// arithmetic never rejects a row for a dirty number; it computes what it can.
func CoerceOrZero(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return t
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case float64:
		d, err := newFromFloat(t)
		if err != nil {
			return decimal.Zero
		}
		return d
	case *float64:
		if t == nil {
			return decimal.Zero
		}
		return CoerceOrZero(*t)
	case *int64:
		if t == nil {
			return decimal.Zero
		}
		return decimal.NewFromInt(*t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	case *string:
		if t == nil {
			return decimal.Zero
		}
		return CoerceOrZero(*t)
	default:
		return decimal.Zero
	}
}

func newFromFloat(f float64) (d decimal.Decimal, err error) {
	// decimal.NewFromFloat panics on NaN and Inf.
	defer func() {
		if r := recover(); r != nil {
			d = decimal.Zero
			err = errNonFinite
		}
	}()
	return decimal.NewFromFloat(f), nil
}

type nonFiniteError struct{}

func (nonFiniteError) Error() string { return "non-finite float" }

var errNonFinite = nonFiniteError{}

// FloatOrZero is CoerceOrZero flattened to float64 for callers that only
// carry plain numbers.
func FloatOrZero(v any) float64 {
	f, _ := CoerceOrZero(v).Float64()
	return f
}
