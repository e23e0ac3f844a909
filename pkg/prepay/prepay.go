// Package prepay applies extraordinary principal payments to an amortization
// schedule under the two recalculation policies: shrink the installment and
// keep the term, or keep the installment and shrink the term.
package prepay

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/dsalazarv/credit-forecast/pkg/constants"
	"github.com/dsalazarv/credit-forecast/pkg/datetime"
	"github.com/dsalazarv/credit-forecast/pkg/frequency"
	"github.com/dsalazarv/credit-forecast/pkg/mathutil"
	"github.com/dsalazarv/credit-forecast/pkg/schedule"
)

// ErrSafetyLimit indicates a replay failed to retire the balance within the
// iteration ceiling. It signals degenerate inputs upstream, not a condition
// valid rate/term combinations can reach.
var ErrSafetyLimit = errors.New("replay exceeded the iteration safety limit without retiring the balance")

// Origin tags how an extraordinary payment entered the schedule.
type Origin string

const (
	OriginScheduled Origin = "scheduled"
	OriginAdHoc     Origin = "ad-hoc"
)

// Payment is one extraordinary principal payment targeted at a period.
type Payment struct {
	Period int     `json:"period"`
	Amount float64 `json:"amount"`
	Origin Origin  `json:"origin,omitempty"`
}

// Policy selects how the schedule reacts to an extraordinary payment.
type Policy string

const (
	// ReduceInstallment recomputes a smaller installment over the periods
	// left of the original term after each extraordinary payment.
	ReduceInstallment Policy = "reduce-installment"

	// ReduceTerm keeps the installment fixed; the smaller balance simply
	// retires earlier.
	ReduceTerm Policy = "reduce-term"
)

// ParsePolicy converts a string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case ReduceInstallment, ReduceTerm:
		return Policy(s), nil
	case "":
		return ReduceInstallment, nil
	default:
		return "", fmt.Errorf("unknown recalculation policy %q; expected %q or %q", s, ReduceInstallment, ReduceTerm)
	}
}

// Engine replays schedules with extraordinary payments applied.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new engine instance.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// paymentIndex builds the period-keyed lookup. Later entries for the same
// period overwrite earlier ones; that keyed last-write-wins is the collision
// contract between scheduled and ad-hoc payments.
func paymentIndex(payments []Payment) map[int]float64 {
	index := make(map[int]float64, len(payments))
	for _, p := range payments {
		index[p.Period] = p.Amount
	}
	return index
}

// Apply generates a schedule from scratch with the given extraordinary
// payments applied under the policy. The loop is bounded at twice the
// nominal period count; hitting that bound returns ErrSafetyLimit.
func (e *Engine) Apply(principal, periodRate float64, nominalPeriods int, payments []Payment,
	startDate string, paymentFreq frequency.Frequency, policy Policy) ([]schedule.Row, error) {

	installment, err := schedule.FixedInstallment(principal, periodRate, nominalPeriods)
	if err != nil {
		return nil, err
	}

	extras := paymentIndex(payments)
	daysPerPeriod := datetime.DaysPerPeriod(paymentFreq.Months())
	currentDate := startDate

	balance := principal
	limit := nominalPeriods * constants.ReplaySafetyFactor
	rows := make([]schedule.Row, 0, nominalPeriods)

	for period := 1; balance > constants.CurrencyTolerance && period <= limit; period++ {
		interest := schedule.InterestPortion(balance, periodRate)
		principalPortion := installment - interest
		extra := extras[period]

		balance -= principalPortion + extra
		if balance < 0 {
			// Absorb the overshoot so the stated balance floor is 0.
			principalPortion += balance
			balance = 0
		}

		currentDate, err = datetime.AddDays(currentDate, daysPerPeriod)
		if err != nil {
			return nil, err
		}

		rows = append(rows, schedule.Row{
			Period:       period,
			Date:         currentDate,
			Installment:  mathutil.Round(installment),
			Interest:     mathutil.Round(interest),
			Principal:    mathutil.Round(principalPortion),
			ExtraPayment: mathutil.Round(extra),
			Balance:      mathutil.Round(mathutil.Max(0, balance)),
		})

		if extra > 0 && balance > constants.CurrencyTolerance && policy == ReduceInstallment {
			// The recompute anchors to the original nominal count, so a
			// later payment shrinks the installment against the same term
			// an earlier one already shortened.
			remaining := nominalPeriods - period
			if remaining > 0 {
				installment, err = schedule.FixedInstallment(balance, periodRate, remaining)
				if err != nil {
					return nil, err
				}
				e.logger.Debug(fmt.Sprintf("period %d: extra payment %.2f, installment recomputed to %.2f over %d periods",
					period, extra, installment, remaining),
					zap.String("op", "prepay.Apply"),
				)
			}
		}
	}

	if balance > constants.CurrencyTolerance {
		return rows, fmt.Errorf("balance %.2f after %d periods: %w", balance, limit, ErrSafetyLimit)
	}

	return rows, nil
}

// Replay recomputes an existing baseline schedule with extraordinary
// payments applied, keeping the baseline's period dates. The replay covers
// at most the baseline's length; under ReduceTerm it ends as soon as the
// balance retires.
func (e *Engine) Replay(baseline []schedule.Row, payments []Payment, periodRate float64, policy Policy) ([]schedule.Row, error) {
	if len(baseline) == 0 {
		return nil, fmt.Errorf("cannot replay an empty schedule")
	}

	extras := paymentIndex(payments)

	// Reconstruct the starting balance from the first row.
	balance := baseline[0].Balance + baseline[0].Principal + baseline[0].ExtraPayment
	installment := baseline[0].Installment

	rows := make([]schedule.Row, 0, len(baseline))

	for _, original := range baseline {
		interest := schedule.InterestPortion(balance, periodRate)
		principalPortion := installment - interest
		extra := extras[original.Period]

		balance -= principalPortion + extra
		if balance < 0 {
			principalPortion += balance
			balance = 0
		}

		rows = append(rows, schedule.Row{
			Period:       original.Period,
			Date:         original.Date,
			Installment:  mathutil.Round(installment),
			Interest:     mathutil.Round(interest),
			Principal:    mathutil.Round(principalPortion),
			ExtraPayment: mathutil.Round(extra),
			Balance:      mathutil.Round(mathutil.Max(0, balance)),
		})

		if extra > 0 && balance > constants.CurrencyTolerance && policy == ReduceInstallment {
			remaining := len(baseline) - original.Period
			if remaining > 0 {
				var err error
				installment, err = schedule.FixedInstallment(balance, periodRate, remaining)
				if err != nil {
					return nil, err
				}
			}
		}

		if balance <= constants.CurrencyTolerance {
			break
		}
	}

	return rows, nil
}

// AppendAdHoc adds one ad-hoc extraordinary payment to an existing schedule
// and replays the whole credit from period 1: the original principal is
// reconstructed from the first row, every extraordinary payment already in
// the schedule is collected alongside the new one, and the full term is
// recomputed under the policy. Not an incremental patch.
func (e *Engine) AppendAdHoc(existing []schedule.Row, period int, amount float64, periodRate float64,
	policy Policy, startDate string, paymentFreq frequency.Frequency) ([]schedule.Row, error) {

	if len(existing) == 0 {
		return nil, fmt.Errorf("cannot add a payment to an empty schedule")
	}

	first := existing[0]
	principal := first.Balance + first.Principal + first.ExtraPayment

	payments := make([]Payment, 0, len(existing)+1)
	for _, row := range existing {
		if row.ExtraPayment > 0 {
			payments = append(payments, Payment{Period: row.Period, Amount: row.ExtraPayment})
		}
	}
	payments = append(payments, Payment{Period: period, Amount: amount, Origin: OriginAdHoc})

	// Stable so a collision on the same period resolves to the new entry.
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Period < payments[j].Period })

	e.logger.Debug(fmt.Sprintf("ad-hoc payment %.2f at period %d triggers full replay of %d periods",
		amount, period, len(existing)),
		zap.String("op", "prepay.AppendAdHoc"),
	)

	return e.Apply(principal, periodRate, len(existing), payments, startDate, paymentFreq, policy)
}

// GenerateScheduled emits one extraordinary payment at every interval the
// payment frequency fits into the extra-payment frequency, up to the total
// period count. Callers validate frequency compatibility beforehand; an
// interval below one whole payment period is rejected here as a backstop.
func GenerateScheduled(extraFreq, paymentFreq frequency.Frequency, amount float64, totalPeriods int) ([]Payment, error) {
	interval := int(extraFreq.Months() / paymentFreq.Months())
	if interval < 1 {
		return nil, fmt.Errorf("extra payment frequency %s is shorter than payment frequency %s", extraFreq, paymentFreq)
	}

	var payments []Payment
	for period := interval; period <= totalPeriods; period += interval {
		payments = append(payments, Payment{Period: period, Amount: amount, Origin: OriginScheduled})
	}
	return payments, nil
}

// Savings captures the effect of extraordinary payments against the
// baseline schedule.
type Savings struct {
	InterestSaved           float64 `json:"interestSaved"`
	TermReductionPeriods    int     `json:"termReductionPeriods"`
	TotalInterestBaseline   float64 `json:"totalInterestBaseline"`
	TotalInterestWithExtras float64 `json:"totalInterestWithAbonos"`
	TotalPaidBaseline       float64 `json:"totalPaidBaseline"`
	TotalPaidWithExtras     float64 `json:"totalPaidWithAbonos"`
}

// ComputeSavings diffs a baseline schedule against one replayed with
// extraordinary payments. Totals are sums of the already-rounded row values;
// the with-extras total paid includes the extra-payment column, the baseline
// has none.
func ComputeSavings(baseline, withExtras []schedule.Row) Savings {
	var interestBase, paidBase float64
	for _, row := range baseline {
		interestBase += row.Interest
		paidBase += row.Installment
	}

	var interestExtras, paidExtras float64
	for _, row := range withExtras {
		interestExtras += row.Interest
		paidExtras += row.Installment + row.ExtraPayment
	}

	return Savings{
		InterestSaved:           mathutil.Round(interestBase - interestExtras),
		TermReductionPeriods:    len(baseline) - len(withExtras),
		TotalInterestBaseline:   mathutil.Round(interestBase),
		TotalInterestWithExtras: mathutil.Round(interestExtras),
		TotalPaidBaseline:       mathutil.Round(paidBase),
		TotalPaidWithExtras:     mathutil.Round(paidExtras),
	}
}
