package summary

import (
	"testing"

	"github.com/dsalazarv/credit-forecast/pkg/schedule"
)

func sampleRows() []schedule.Row {
	return []schedule.Row{
		{Period: 1, Date: "2024-01-31", Installment: 500.00, Interest: 100.00, Principal: 400.00, ExtraPayment: 0, Balance: 600.00},
		{Period: 2, Date: "2024-03-01", Installment: 500.00, Interest: 60.00, Principal: 440.00, ExtraPayment: 100.00, Balance: 60.00},
		{Period: 3, Date: "2024-03-31", Installment: 500.00, Interest: 6.00, Principal: 60.00, ExtraPayment: 0, Balance: 0},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRows(), 1000)

	if s.InitialPrincipal != 1000 {
		t.Errorf("InitialPrincipal = %v, want 1000", s.InitialPrincipal)
	}
	if s.TotalInterest != 166.00 {
		t.Errorf("TotalInterest = %v, want 166.00", s.TotalInterest)
	}
	if s.TotalExtraPayments != 100.00 {
		t.Errorf("TotalExtraPayments = %v, want 100.00", s.TotalExtraPayments)
	}
	if s.TotalPaid != 1600.00 {
		t.Errorf("TotalPaid = %v, want 1600.00", s.TotalPaid)
	}
	if s.PeriodCount != 3 {
		t.Errorf("PeriodCount = %d, want 3", s.PeriodCount)
	}
	if s.MeanInstallment != 500.00 {
		t.Errorf("MeanInstallment = %v, want 500.00", s.MeanInstallment)
	}
	if s.FinalBalance != 0 {
		t.Errorf("FinalBalance = %v, want 0", s.FinalBalance)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 1000)
	if s.PeriodCount != 0 {
		t.Errorf("PeriodCount = %d, want 0", s.PeriodCount)
	}
	if s.TotalPaid != 0 {
		t.Errorf("TotalPaid = %v, want 0", s.TotalPaid)
	}
	if s.InitialPrincipal != 1000 {
		t.Errorf("InitialPrincipal = %v, want 1000", s.InitialPrincipal)
	}
}

// Totals are sums of rounded row values, not rounded sums of unrounded
// internals. Rows carrying a repeating third decimal would expose drift;
// these rows are pre-rounded so both paths agree, and the contract is that
// Summarize never reaches behind the rows for unrounded state.
func TestSummarizeUsesRowValuesAsEmitted(t *testing.T) {
	rows := []schedule.Row{
		{Period: 1, Installment: 33.33, Interest: 10.01, Principal: 23.32, Balance: 66.67},
		{Period: 2, Installment: 33.33, Interest: 6.67, Principal: 26.66, Balance: 40.01},
		{Period: 3, Installment: 33.33, Interest: 4.00, Principal: 29.33, Balance: 10.68},
	}
	s := Summarize(rows, 100)
	if s.TotalInterest != 20.68 {
		t.Errorf("TotalInterest = %v, want 20.68 (sum of emitted values)", s.TotalInterest)
	}
	if s.TotalPaid != 99.99 {
		t.Errorf("TotalPaid = %v, want 99.99 (sum of emitted values)", s.TotalPaid)
	}
}

func TestCompare(t *testing.T) {
	baseline := []schedule.Row{
		{Period: 1, Installment: 500, Interest: 100, Principal: 400, Balance: 600},
		{Period: 2, Installment: 500, Interest: 60, Principal: 440, Balance: 160},
		{Period: 3, Installment: 500, Interest: 16, Principal: 160, Balance: 0},
	}
	withExtras := []schedule.Row{
		{Period: 1, Installment: 500, Interest: 100, Principal: 400, ExtraPayment: 300, Balance: 300},
		{Period: 2, Installment: 500, Interest: 30, Principal: 300, Balance: 0},
	}

	c := Compare(baseline, withExtras, 1000)

	if c.InterestSaved != 46.00 {
		t.Errorf("InterestSaved = %v, want 46.00", c.InterestSaved)
	}
	if c.TermReductionPeriods != 1 {
		t.Errorf("TermReductionPeriods = %d, want 1", c.TermReductionPeriods)
	}
	if c.InterestSavedPercent != 26.14 {
		t.Errorf("InterestSavedPercent = %v, want 26.14", c.InterestSavedPercent)
	}
	if c.TermReductionPercent != 33.33 {
		t.Errorf("TermReductionPercent = %v, want 33.33", c.TermReductionPercent)
	}
	if c.Baseline.TotalInterest != 176.00 {
		t.Errorf("baseline TotalInterest = %v, want 176.00", c.Baseline.TotalInterest)
	}
	if c.WithExtras.TotalPaid != 1300.00 {
		t.Errorf("with-extras TotalPaid = %v, want 1300.00", c.WithExtras.TotalPaid)
	}
}
