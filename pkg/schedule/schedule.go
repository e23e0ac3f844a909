package schedule

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/dsalazarv/credit-forecast/pkg/constants"
	"github.com/dsalazarv/credit-forecast/pkg/datetime"
	"github.com/dsalazarv/credit-forecast/pkg/frequency"
	"github.com/dsalazarv/credit-forecast/pkg/mathutil"
	"github.com/dsalazarv/credit-forecast/pkg/rates"
)

// CreditTerms holds the parameters a schedule is generated from. Immutable
// once generation begins.
type CreditTerms struct {
	Principal          float64
	AnnualRatePercent  float64
	RateType           rates.RateType
	PaymentTiming      rates.Timing
	TermMonths         int
	PaymentFrequency   frequency.Frequency
	StartDate          string
	QuotationFrequency frequency.Frequency
}

// Row holds the values for one payment period.
type Row struct {
	Period       int     `json:"period"`
	Date         string  `json:"date"`
	Installment  float64 `json:"installment"`
	Interest     float64 `json:"interest"`
	Principal    float64 `json:"principalPortion"`
	ExtraPayment float64 `json:"extraPayment"`
	Balance      float64 `json:"balance"`
}

// PeriodRate returns the interest rate applicable to one payment period.
func (t CreditTerms) PeriodRate() (float64, error) {
	quotation := t.QuotationFrequency
	if quotation == "" {
		quotation = frequency.Annual
	}
	return rates.PeriodRate(t.AnnualRatePercent, t.RateType, t.PaymentTiming, t.PaymentFrequency, quotation)
}

// Periods returns the number of payment periods the term spans.
func (t CreditTerms) Periods() int {
	return int(float64(t.TermMonths) / t.PaymentFrequency.Months())
}

// Generator builds amortization schedules.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new generator instance.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Generate creates the baseline amortization schedule for the given terms,
// with no extraordinary payments. Monetary fields are rounded to currency
// precision as each row is emitted; the unrounded balance carries forward
// internally.
func (g *Generator) Generate(terms CreditTerms) ([]Row, error) {
	periodRate, err := terms.PeriodRate()
	if err != nil {
		return nil, err
	}

	periods := terms.Periods()
	installment, err := FixedInstallment(terms.Principal, periodRate, periods)
	if err != nil {
		return nil, err
	}

	g.logger.Debug(fmt.Sprintf("generating schedule over %d periods with installment %.2f", periods, installment),
		zap.String("op", "schedule.Generate"),
		zap.Float64("periodRate", periodRate),
	)

	daysPerPeriod := datetime.DaysPerPeriod(terms.PaymentFrequency.Months())
	currentDate := terms.StartDate

	balance := terms.Principal
	rows := make([]Row, 0, periods)

	for period := 1; period <= periods; period++ {
		interest := InterestPortion(balance, periodRate)
		principalPortion := installment - interest
		balance -= principalPortion

		// Close out rounding drift on the final scheduled period.
		if period == periods && math.Abs(balance) < constants.CurrencyTolerance {
			balance = 0
		}

		currentDate, err = datetime.AddDays(currentDate, daysPerPeriod)
		if err != nil {
			return nil, err
		}

		rows = append(rows, Row{
			Period:      period,
			Date:        currentDate,
			Installment: mathutil.Round(installment),
			Interest:    mathutil.Round(interest),
			Principal:   mathutil.Round(principalPortion),
			Balance:     mathutil.Round(mathutil.Max(0, balance)),
		})

		// Safety exit; a positive-rate schedule retires exactly at the
		// last period, but degenerate inputs may land early.
		if balance <= 0 {
			break
		}
	}

	return rows, nil
}
