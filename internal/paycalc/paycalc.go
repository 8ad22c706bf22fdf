// Package paycalc implements the proration formulas that turn monthly rate
// card values into period-earned amounts and statutory deductions. Every
// function is pure; persistence and orchestration live in payrollrun.
//
// All rounding is round-half-up (half away from zero), applied once per
// component through roundAmount. Amounts are whole currency units.
package paycalc

import (
	"github.com/shopspring/decimal"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/shared/numeric"
)

const (
	// StandardWorkingDays is the fixed month length used for proration.
	StandardWorkingDays = 26
	// ESICeiling is the gross threshold at and above which the ESI
	// deduction does not apply. A hard cliff, not a marginal rate.
	ESICeiling = 21000
	// PFRatePercent and ESIRatePercent are statutory deduction rates.
	PFRatePercent  = 12
	ESIRatePercent = 0.75
	// HoursPerDay converts overtime days to hours.
	HoursPerDay = 8
)

var (
	standardDays = decimal.NewFromInt(StandardWorkingDays)
	hoursPerDay  = decimal.NewFromInt(HoursPerDay)
	pfRate       = decimal.NewFromInt(PFRatePercent).Div(decimal.NewFromInt(100))
	esiRate      = decimal.NewFromFloat(ESIRatePercent).Div(decimal.NewFromInt(100))
	esiCeiling   = decimal.NewFromInt(ESICeiling)
)

// roundAmount rounds to the nearest whole currency unit, halves away from
// zero. decimal.Round implements exactly that convention.
func roundAmount(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// PayableDays returns the explicit override when it is a positive number,
// otherwise present days plus national holidays.
func PayableDays(presentDays, nationalHoliday, explicitPayableDays any) decimal.Decimal {
	explicit := numeric.CoerceOrZero(explicitPayableDays)
	if explicit.IsPositive() {
		return explicit
	}
	return numeric.CoerceOrZero(presentDays).Add(numeric.CoerceOrZero(nationalHoliday))
}

// Prorate scales a monthly rate down to the earned amount for the given
// payable days: round(rate * days / 26). Multiplication happens before the
// division so a full month reproduces round(rate) exactly; dividing first
// would truncate at the library's division precision.
func Prorate(monthlyRate any, payableDays decimal.Decimal) int64 {
	rate := numeric.CoerceOrZero(monthlyRate)
	if rate.IsZero() || payableDays.IsZero() {
		return 0
	}
	return roundAmount(rate.Mul(payableDays).Div(standardDays))
}

// Incentive is the overtime amount: double the effective hourly basic rate
// for every overtime hour, round(basic * 2 * otHours / (26 * 8)). Multiply
// first for the same precision reason as Prorate.
func Incentive(basicMonthly, otHours any) int64 {
	basic := numeric.CoerceOrZero(basicMonthly)
	hours := numeric.CoerceOrZero(otHours)
	if basic.IsZero() || hours.IsZero() {
		return 0
	}
	return roundAmount(basic.Mul(decimal.NewFromInt(2)).Mul(hours).Div(standardDays.Mul(hoursPerDay)))
}

// PFDeduction is 12% of the earned basic.
func PFDeduction(basicEarned int64) int64 {
	return roundAmount(decimal.NewFromInt(basicEarned).Mul(pfRate))
}

// ESIDeduction is 0.75% of gross below the eligibility ceiling and zero at
// or above it; gross exactly at the ceiling is exempt.
func ESIDeduction(gross int64) int64 {
	g := decimal.NewFromInt(gross)
	if g.GreaterThanOrEqual(esiCeiling) {
		return 0
	}
	return roundAmount(g.Mul(esiRate))
}

// DeductionLine is one configured welfare-fund or miscellaneous deduction.
type DeductionLine struct {
	Name   string
	Amount float64
}

// Inputs carries the rate card values and the attendance counts for one
// employee period. Zero values are valid everywhere; missing data simply
// earns nothing.
type Inputs struct {
	// Monthly rates
	Basic          float64
	HRA            float64
	OtherAllowance float64
	LeaveRate      float64
	BonusRate      float64
	Deductions     []DeductionLine

	// Attendance counts
	PresentDays         float64
	NationalHoliday     float64
	ExplicitPayableDays float64
	LeaveDays           float64
	OTHours             float64

	// ExplicitIncentive, when positive, replaces the computed overtime
	// amount, mirroring the explicit payable-days override.
	ExplicitIncentive float64
	Arrear            float64
}

// Options are the run settings that influence the computation.
type Options struct {
	// AutoStatutory computes PF and ESI; when off both stay zero and only
	// the configured deduction lines apply.
	AutoStatutory bool
}

// DeductionAmount is one resolved deduction line in a Breakdown.
type DeductionAmount struct {
	Name   string
	Amount int64
}

// Breakdown is the full computed result for one employee period.
type Breakdown struct {
	PayableDays float64

	BasicEarned          int64
	HRAEarned            int64
	OtherAllowanceEarned int64
	LeaveEarnings        int64
	BonusEarnings        int64
	Arrear               int64
	TotalEarning         int64
	Incentive            int64
	Gross                int64

	PF              int64
	ESI             int64
	OtherDeductions []DeductionAmount
	TotalDeductions int64

	NetPay int64
}

// Compute runs the whole calculation.
func Compute(in Inputs, opts Options) Breakdown {
	days := PayableDays(in.PresentDays, in.NationalHoliday, in.ExplicitPayableDays)
	daysF, _ := days.Float64()

	b := Breakdown{PayableDays: daysF}

	b.BasicEarned = Prorate(in.Basic, days)
	b.HRAEarned = Prorate(in.HRA, days)
	b.OtherAllowanceEarned = Prorate(in.OtherAllowance, days)
	b.LeaveEarnings = Prorate(in.LeaveRate, days)
	b.BonusEarnings = Prorate(in.BonusRate, days)

	// Arrear is added after the sum, never prorated.
	b.Arrear = roundAmount(numeric.CoerceOrZero(in.Arrear))
	b.TotalEarning = b.BasicEarned + b.HRAEarned + b.OtherAllowanceEarned +
		b.LeaveEarnings + b.BonusEarnings + b.Arrear

	explicit := numeric.CoerceOrZero(in.ExplicitIncentive)
	if explicit.IsPositive() {
		b.Incentive = roundAmount(explicit)
	} else {
		b.Incentive = Incentive(in.Basic, in.OTHours)
	}

	b.Gross = b.TotalEarning + b.Incentive

	if opts.AutoStatutory {
		b.PF = PFDeduction(b.BasicEarned)
		b.ESI = ESIDeduction(b.Gross)
	}

	b.TotalDeductions = b.PF + b.ESI
	for _, line := range in.Deductions {
		amount := roundAmount(numeric.CoerceOrZero(line.Amount))
		b.OtherDeductions = append(b.OtherDeductions, DeductionAmount{Name: line.Name, Amount: amount})
		b.TotalDeductions += amount
	}

	b.NetPay = b.Gross - b.TotalDeductions

	return b
}
