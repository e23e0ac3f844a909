// Package simulation orchestrates schedule generation and extra-payment
// scenarios from a loaded configuration.
package simulation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dsalazarv/credit-forecast/internal/config"
	"github.com/dsalazarv/credit-forecast/pkg/frequency"
	"github.com/dsalazarv/credit-forecast/pkg/prepay"
	"github.com/dsalazarv/credit-forecast/pkg/schedule"
	"github.com/dsalazarv/credit-forecast/pkg/summary"
	"github.com/dsalazarv/credit-forecast/pkg/validation"
)

// Result holds the outcome of running one scenario against the credit.
type Result struct {
	Name       string              `json:"name"`
	Policy     prepay.Policy       `json:"policy"`
	Baseline   []schedule.Row      `json:"baseline"`
	WithAbonos []schedule.Row      `json:"withAbonos,omitempty"`
	Summary    summary.Summary     `json:"summary"`
	Comparison *summary.Comparison `json:"comparison,omitempty"`
	Savings    *prepay.Savings     `json:"savings,omitempty"`
}

// Run builds the baseline schedule for the configured credit and applies each
// active scenario's extra payments to it. When no scenario is active the
// baseline alone is returned as a single result.
func Run(logger *zap.Logger, conf *config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	terms, err := conf.Credit.Terms()
	if err != nil {
		return nil, fmt.Errorf("credit %s: %w", conf.Credit.Name, err)
	}
	if err := validation.ValidateCreditTerms(terms); err != nil {
		return nil, fmt.Errorf("credit %s: %w", conf.Credit.Name, err)
	}

	generator := schedule.NewGenerator(logger)
	baseline, err := generator.Generate(terms)
	if err != nil {
		return nil, fmt.Errorf("baseline schedule for %s: %w", conf.Credit.Name, err)
	}

	periodRate, err := terms.PeriodRate()
	if err != nil {
		return nil, err
	}
	periods := terms.Periods()

	logger.Debug("generated baseline schedule",
		zap.String("op", "simulation.Run"),
		zap.String("credit", conf.Credit.Name),
		zap.Int("periods", len(baseline)),
	)

	active := activeScenarios(conf.Scenarios)
	if len(active) == 0 {
		base := summary.Summarize(baseline, terms.Principal)
		return []Result{{
			Name:     conf.Credit.Name,
			Policy:   prepay.ReduceInstallment,
			Baseline: baseline,
			Summary:  base,
		}}, nil
	}

	engine := prepay.NewEngine(logger)
	results := make([]Result, 0, len(active))
	for _, scenario := range active {
		result, err := runScenario(engine, scenario, terms, baseline, periodRate, periods)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

func runScenario(engine *prepay.Engine, scenario config.Scenario, terms schedule.CreditTerms, baseline []schedule.Row, periodRate float64, periods int) (Result, error) {
	policy, err := prepay.ParsePolicy(scenario.ExtraPayments.Policy)
	if err != nil {
		return Result{}, err
	}

	payments, err := scenarioPayments(scenario, terms, periods)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Name:     scenario.Name,
		Policy:   policy,
		Baseline: baseline,
	}

	if len(payments) == 0 {
		result.Summary = summary.Summarize(baseline, terms.Principal)
		return result, nil
	}

	withAbonos, err := engine.Apply(terms.Principal, periodRate, periods, payments, terms.StartDate, terms.PaymentFrequency, policy)
	if err != nil {
		return Result{}, err
	}

	comparison := summary.Compare(baseline, withAbonos, terms.Principal)
	savings := prepay.ComputeSavings(baseline, withAbonos)

	result.WithAbonos = withAbonos
	result.Summary = comparison.WithExtras
	result.Comparison = &comparison
	result.Savings = &savings
	return result, nil
}

// scenarioPayments collects the scheduled and ad-hoc extra payments for one
// scenario. An ad-hoc payment on the same period as a scheduled one replaces
// it.
func scenarioPayments(scenario config.Scenario, terms schedule.CreditTerms, periods int) ([]prepay.Payment, error) {
	extras := scenario.ExtraPayments
	var payments []prepay.Payment

	if extras.ScheduledAmount > 0 && extras.ScheduledFrequency != "" {
		extraFreq, err := frequency.Parse(extras.ScheduledFrequency)
		if err != nil {
			return nil, fmt.Errorf("scheduled extra payment: %w", err)
		}
		if err := validation.ValidateExtraPaymentFrequency(extraFreq, terms.PaymentFrequency); err != nil {
			return nil, err
		}
		scheduled, err := prepay.GenerateScheduled(extraFreq, terms.PaymentFrequency, extras.ScheduledAmount, periods)
		if err != nil {
			return nil, err
		}
		payments = append(payments, scheduled...)
	}

	for _, adHoc := range extras.AdHoc {
		if err := validation.ValidateExtraPayment(adHoc.Period, adHoc.Amount, periods); err != nil {
			return nil, err
		}
		payments = append(payments, prepay.Payment{
			Period: adHoc.Period,
			Amount: adHoc.Amount,
			Origin: prepay.OriginAdHoc,
		})
	}

	return payments, nil
}

func activeScenarios(scenarios []config.Scenario) []config.Scenario {
	var active []config.Scenario
	for _, scenario := range scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}
