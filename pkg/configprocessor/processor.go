// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import (
	"fmt"
	"math"

	"github.com/dsalazarv/credit-forecast/pkg/frequency"
)

// CreditInfo represents credit configuration information
type CreditInfo struct {
	Name              string
	AnnualRatePercent float64
	TermMonths        int
	PaymentFrequency  frequency.Frequency
}

// ExtraPlanInfo represents an extraordinary payment plan's configuration
type ExtraPlanInfo struct {
	ScheduledFrequency frequency.Frequency
	ScheduledAmount    float64
	AdHocPeriods       []int
}

// ScenarioInfo represents scenario configuration information
type ScenarioInfo struct {
	Name   string
	Active bool
	Extras ExtraPlanInfo
}

// Processor handles configuration processing and validation
type Processor struct{}

// NewProcessor creates a new configuration processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateConfiguration inspects the credit and scenario configuration and
// returns warnings for settings that are legal but probably not what the
// user meant.
func (p *Processor) ValidateConfiguration(credit CreditInfo, scenarios []ScenarioInfo) []string {
	var warnings []string

	if !credit.PaymentFrequency.Valid() {
		return warnings
	}

	periodMonths := credit.PaymentFrequency.Months()
	totalPeriods := int(float64(credit.TermMonths) / periodMonths)

	if remainder := math.Mod(float64(credit.TermMonths), periodMonths); remainder > 1e-9 {
		warnings = append(warnings, fmt.Sprintf(
			"Credit '%s': term of %d months is not an exact multiple of the %s payment period; the trailing %.1f months are dropped",
			credit.Name, credit.TermMonths, credit.PaymentFrequency, remainder))
	}

	if credit.AnnualRatePercent == 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Credit '%s': annual rate is 0; the schedule degenerates to a straight principal split", credit.Name))
	}

	for _, scenario := range scenarios {
		if !scenario.Active {
			continue
		}

		extras := scenario.Extras
		if extras.ScheduledAmount > 0 && extras.ScheduledFrequency.Valid() {
			interval := int(extras.ScheduledFrequency.Months() / periodMonths)
			if interval > totalPeriods {
				warnings = append(warnings, fmt.Sprintf(
					"Scenario '%s': scheduled extra payments every %s never occur within %d %s periods",
					scenario.Name, extras.ScheduledFrequency, totalPeriods, credit.PaymentFrequency))
			}
		}

		for _, period := range extras.AdHocPeriods {
			if period > totalPeriods {
				warnings = append(warnings, fmt.Sprintf(
					"Scenario '%s': ad-hoc extra payment at period %d falls beyond the %d-period term",
					scenario.Name, period, totalPeriods))
			}
		}
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
