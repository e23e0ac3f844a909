// Package rates provides interest rate convention conversions: nominal to
// effective, anticipated to due, and frequency equivalence. All functions
// operate on decimal fractions (0.12 means 12%) unless stated otherwise and
// are pure.
package rates

import (
	"fmt"
	"math"

	"github.com/dsalazarv/credit-forecast/pkg/constants"
	"github.com/dsalazarv/credit-forecast/pkg/frequency"
)

// RateType distinguishes how an annual rate is quoted.
type RateType string

const (
	Nominal   RateType = "nominal"
	Effective RateType = "effective"
)

// Timing distinguishes when interest is charged within a period.
type Timing string

const (
	Due         Timing = "due"
	Anticipated Timing = "anticipated"
)

// compoundingsPerYear maps a rate quotation frequency to the number of
// compoundings used for nominal-to-effective conversion. Unlisted
// frequencies fall back to monthly compounding.
var compoundingsPerYear = map[frequency.Frequency]int{
	frequency.Monthly:    12,
	frequency.Quarterly:  4,
	frequency.Semiannual: 2,
	frequency.Annual:     1,
}

// NominalToEffective converts a nominal annual rate compounded m times per
// year into the effective annual rate: (1 + r/m)^m - 1.
func NominalToEffective(nominalRate float64, m int) float64 {
	return math.Pow(1+nominalRate/float64(m), float64(m)) - 1
}

// EffectiveToNominal converts an effective annual rate into the nominal
// annual rate compounded m times per year: m * ((1 + e)^(1/m) - 1).
func EffectiveToNominal(effectiveRate float64, m int) float64 {
	return float64(m) * (math.Pow(1+effectiveRate, 1/float64(m)) - 1)
}

// AnticipatedToDue converts an anticipated (beginning-of-period) rate into
// the equivalent due rate: r / (1 + r).
func AnticipatedToDue(anticipatedRate float64) float64 {
	return anticipatedRate / (1 + anticipatedRate)
}

// DueToAnticipated converts a due rate into the equivalent anticipated rate:
// r / (1 - r). A due rate at or above 1 has no anticipated equivalent and is
// rejected rather than returning an infinity.
func DueToAnticipated(dueRate float64) (float64, error) {
	if dueRate >= 1 {
		return 0, fmt.Errorf("due rate %v has no anticipated equivalent; must be below 1", dueRate)
	}
	return dueRate / (1 - dueRate), nil
}

// ConvertByMonths converts an effective rate from one frequency to another
// using the month equivalence table: (1 + r)^(targetMonths/sourceMonths) - 1.
func ConvertByMonths(rate float64, source, target frequency.Frequency) float64 {
	return math.Pow(1+rate, target.Months()/source.Months()) - 1
}

// ConvertByDays converts an effective rate from one frequency to another
// through an implied daily rate on the day equivalence table. Because the
// day table is not consistent with the month table, this yields a different
// number than ConvertByMonths for the same inputs; callers pick the
// convention they need.
func ConvertByDays(rate float64, source, target frequency.Frequency) float64 {
	dailyRate := math.Pow(1+rate, 1/float64(source.Days())) - 1
	return math.Pow(1+dailyRate, float64(target.Days())) - 1
}

// PeriodRate composes the conversions into the rate applicable to one
// payment period: percentage to fraction, nominal to effective (compounding
// count looked up from the quotation frequency), anticipated to due, then
// month-based frequency conversion from the quotation frequency to the
// payment frequency.
func PeriodRate(annualRatePct float64, rateType RateType, timing Timing, paymentFreq, quotationFreq frequency.Frequency) (float64, error) {
	rate := annualRatePct / constants.PercentageMultiplier

	if rateType == Nominal {
		m, ok := compoundingsPerYear[quotationFreq]
		if !ok {
			m = constants.DefaultCompoundingsPerYear
		}
		rate = NominalToEffective(rate, m)
	}

	if timing == Anticipated {
		rate = AnticipatedToDue(rate)
	}

	if !paymentFreq.Valid() {
		return 0, fmt.Errorf("invalid payment frequency %q", paymentFreq)
	}
	source := quotationFreq
	if !source.Valid() {
		source = frequency.Annual
	}

	return ConvertByMonths(rate, source, paymentFreq), nil
}
