// Package output provides utilities for formatting and displaying
// amortization results.
package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dsalazarv/credit-forecast/internal/simulation"
	"github.com/dsalazarv/credit-forecast/pkg/schedule"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []simulation.Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		fmt.Printf("--- Results for scenario %s ---\n", result.Name)

		rows := effectiveRows(result)
		fmt.Printf("Period | Date       | Installment   | Interest      | Principal     | Extra         | Balance\n")
		fmt.Printf("______ | __________ | _____________ | _____________ | _____________ | _____________ | _____________\n")
		for _, row := range rows {
			_, _ = p.Printf("%6d | %s | $%12.2f | $%12.2f | $%12.2f | $%12.2f | $%12.2f\n",
				row.Period, row.Date, row.Installment, row.Interest, row.Principal, row.ExtraPayment, row.Balance)
		}

		fmt.Printf("\nSummary:\n")
		_, _ = p.Printf("  Periods paid:        %d\n", result.Summary.PeriodCount)
		_, _ = p.Printf("  Total interest:      $%.2f\n", result.Summary.TotalInterest)
		_, _ = p.Printf("  Total extra paid:    $%.2f\n", result.Summary.TotalExtraPayments)
		_, _ = p.Printf("  Total paid:          $%.2f\n", result.Summary.TotalPaid)
		_, _ = p.Printf("  Mean installment:    $%.2f\n", result.Summary.MeanInstallment)

		if result.Comparison != nil {
			fmt.Printf("\nVersus baseline (%s policy):\n", result.Policy)
			_, _ = p.Printf("  Interest saved:      $%.2f (%.2f%%)\n",
				result.Comparison.InterestSaved, result.Comparison.InterestSavedPercent)
			_, _ = p.Printf("  Periods saved:       %d (%.2f%%)\n",
				result.Comparison.TermReductionPeriods, result.Comparison.TermReductionPercent)
		}

		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []simulation.Result) {
	fmt.Print(CsvString(results))
}

// CsvString renders the same comma-separated content CsvFormat prints.
func CsvString(results []simulation.Result) string {
	var b strings.Builder
	b.WriteString(`"scenario",` + scheduleCsvHeader + "\n")
	for _, result := range results {
		for _, row := range effectiveRows(result) {
			b.WriteString(fmt.Sprintf(`"%s",`, result.Name))
			writeScheduleCsvRow(&b, row)
		}
	}
	return b.String()
}

// ScheduleCsvString renders a single schedule without scenario labels.
func ScheduleCsvString(rows []schedule.Row) string {
	var b strings.Builder
	b.WriteString(scheduleCsvHeader + "\n")
	for _, row := range rows {
		writeScheduleCsvRow(&b, row)
	}
	return b.String()
}

const scheduleCsvHeader = `"period","date","installment","interest","principal","extraPayment","balance"`

func writeScheduleCsvRow(b *strings.Builder, row schedule.Row) {
	b.WriteString(fmt.Sprintf(`"%d","%s","%.2f","%.2f","%.2f","%.2f","%.2f"`,
		row.Period, row.Date, row.Installment, row.Interest, row.Principal, row.ExtraPayment, row.Balance))
	b.WriteString("\n")
}

// effectiveRows prefers the extra-payment schedule when the scenario produced
// one.
func effectiveRows(result simulation.Result) []schedule.Row {
	if len(result.WithAbonos) > 0 {
		return result.WithAbonos
	}
	return result.Baseline
}
