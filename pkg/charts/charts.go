// Package charts renders amortization schedules as self-contained HTML
// reports.
package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/dsalazarv/credit-forecast/internal/simulation"
	"github.com/dsalazarv/credit-forecast/pkg/schedule"
	"github.com/dsalazarv/credit-forecast/pkg/summary"
)

// BreakdownBar builds a stacked bar chart splitting each installment into its
// interest, principal, and extra-payment portions.
func BreakdownBar(name string, rows []schedule.Row) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s payment breakdown", name)}),
		charts.WithTooltipOpts(opts.Tooltip{}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithToolboxOpts(opts.Toolbox{Show: true}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside", End: 50},
			opts.DataZoom{Type: "slider", End: 50},
		),
	)

	dates := make([]string, len(rows))
	interest := make([]opts.BarData, len(rows))
	principal := make([]opts.BarData, len(rows))
	extras := make([]opts.BarData, len(rows))
	for i, row := range rows {
		dates[i] = row.Date
		interest[i] = opts.BarData{Value: row.Interest}
		principal[i] = opts.BarData{Value: row.Principal}
		extras[i] = opts.BarData{Value: row.ExtraPayment}
	}

	bar.SetXAxis(dates).
		AddSeries("Principal", principal, charts.WithBarChartOpts(opts.BarChart{Stack: "installment"})).
		AddSeries("Interest", interest, charts.WithBarChartOpts(opts.BarChart{Stack: "installment"})).
		AddSeries("Extra", extras, charts.WithBarChartOpts(opts.BarChart{Stack: "installment"}))
	return bar
}

// BalanceLine builds a line chart of the outstanding balance after each
// payment. When a second schedule is supplied both curves share the baseline
// date axis.
func BalanceLine(name string, baseline, withExtras []schedule.Row) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s outstanding balance", name)}),
		charts.WithTooltipOpts(opts.Tooltip{}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)

	dates := make([]string, len(baseline))
	base := make([]opts.LineData, len(baseline))
	for i, row := range baseline {
		dates[i] = row.Date
		base[i] = opts.LineData{Value: row.Balance}
	}

	line.SetXAxis(dates).AddSeries("Baseline", base)

	if len(withExtras) > 0 {
		extras := make([]opts.LineData, len(withExtras))
		for i, row := range withExtras {
			extras[i] = opts.LineData{Value: row.Balance}
		}
		line.AddSeries("With abonos", extras)
	}
	return line
}

// CostPie builds a pie chart splitting the total amount paid into principal,
// interest, and extra payments.
func CostPie(name string, sum summary.Summary) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s total cost", name)}),
		charts.WithTooltipOpts(opts.Tooltip{}),
	)

	data := []opts.PieData{
		{Name: "Principal", Value: sum.InitialPrincipal},
		{Name: "Interest", Value: sum.TotalInterest},
	}
	if sum.TotalExtraPayments > 0 {
		data = append(data, opts.PieData{Name: "Extra payments", Value: sum.TotalExtraPayments})
	}
	pie.AddSeries("cost", data)
	return pie
}

// RenderReport writes a single HTML page with the charts for every result.
func RenderReport(w io.Writer, results []simulation.Result) error {
	page := components.NewPage()
	page.PageTitle = "Credit forecast"

	for _, result := range results {
		rows := result.Baseline
		if len(result.WithAbonos) > 0 {
			rows = result.WithAbonos
		}
		page.AddCharts(
			BreakdownBar(result.Name, rows),
			BalanceLine(result.Name, result.Baseline, result.WithAbonos),
			CostPie(result.Name, result.Summary),
		)
	}

	return page.Render(w)
}
