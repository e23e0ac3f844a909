// Package summary derives aggregate metrics from amortization schedules.
// All aggregation runs over the already-rounded row values, so totals can
// differ from an unrounded-then-rounded computation by accumulated cents;
// that is the contract callers see in exports and reports.
package summary

import (
	"github.com/dsalazarv/credit-forecast/pkg/mathutil"
	"github.com/dsalazarv/credit-forecast/pkg/schedule"
)

// Summary aggregates one schedule.
type Summary struct {
	InitialPrincipal   float64 `json:"initialPrincipal"`
	TotalInterest      float64 `json:"totalInterest"`
	TotalExtraPayments float64 `json:"totalExtraPayments"`
	TotalPaid          float64 `json:"totalPaid"`
	PeriodCount        int     `json:"periodCount"`
	MeanInstallment    float64 `json:"meanInstallment"`
	FinalBalance       float64 `json:"finalBalance"`
}

// Summarize aggregates the schedule's rows. Recomputed on demand, never
// stored.
func Summarize(rows []schedule.Row, initialPrincipal float64) Summary {
	s := Summary{
		InitialPrincipal: mathutil.Round(initialPrincipal),
		PeriodCount:      len(rows),
	}
	if len(rows) == 0 {
		return s
	}

	var installments float64
	for _, row := range rows {
		s.TotalInterest += row.Interest
		s.TotalExtraPayments += row.ExtraPayment
		installments += row.Installment
	}

	s.TotalInterest = mathutil.Round(s.TotalInterest)
	s.TotalExtraPayments = mathutil.Round(s.TotalExtraPayments)
	s.TotalPaid = mathutil.Round(installments + s.TotalExtraPayments)
	s.MeanInstallment = mathutil.Round(installments / float64(len(rows)))
	s.FinalBalance = rows[len(rows)-1].Balance

	return s
}

// Comparison reports two schedules side by side with the savings the
// extra-payment schedule achieves over the baseline.
type Comparison struct {
	Baseline             Summary `json:"baseline"`
	WithExtras           Summary `json:"withAbonos"`
	InterestSaved        float64 `json:"interestSaved"`
	InterestSavedPercent float64 `json:"interestSavedPercent"`
	TermReductionPeriods int     `json:"termReductionPeriods"`
	TermReductionPercent float64 `json:"termReductionPercent"`
}

// Compare builds the comparative report between a baseline schedule and one
// replayed with extraordinary payments.
func Compare(baseline, withExtras []schedule.Row, initialPrincipal float64) Comparison {
	base := Summarize(baseline, initialPrincipal)
	extras := Summarize(withExtras, initialPrincipal)

	interestSaved := base.TotalInterest - extras.TotalInterest
	termReduction := base.PeriodCount - extras.PeriodCount

	return Comparison{
		Baseline:             base,
		WithExtras:           extras,
		InterestSaved:        mathutil.Round(interestSaved),
		InterestSavedPercent: mathutil.Round(mathutil.CalculatePercentage(interestSaved, base.TotalInterest)),
		TermReductionPeriods: termReduction,
		TermReductionPercent: mathutil.Round(mathutil.CalculatePercentage(float64(termReduction), float64(base.PeriodCount))),
	}
}
