// Package validation provides input validation for credit parameters and
// extraordinary payments. Every check fails with a field-specific message
// before any computation happens; nothing is silently coerced.
package validation

import (
	"fmt"
	"math"
	"time"

	"github.com/dsalazarv/credit-forecast/pkg/constants"
	"github.com/dsalazarv/credit-forecast/pkg/frequency"
	"github.com/dsalazarv/credit-forecast/pkg/rates"
	"github.com/dsalazarv/credit-forecast/pkg/schedule"
)

// ValidateCreditTerms checks every field of the credit parameters.
func ValidateCreditTerms(terms schedule.CreditTerms) error {
	if terms.Principal <= 0 {
		return fmt.Errorf("principal must be greater than 0, got %v", terms.Principal)
	}

	if terms.AnnualRatePercent < 0 || terms.AnnualRatePercent > constants.MaxAnnualRatePercent {
		return fmt.Errorf("annual rate must be between 0 and %v percent, got %v",
			constants.MaxAnnualRatePercent, terms.AnnualRatePercent)
	}

	if terms.RateType != rates.Nominal && terms.RateType != rates.Effective {
		return fmt.Errorf("rate type must be %q or %q, got %q", rates.Nominal, rates.Effective, terms.RateType)
	}

	if terms.PaymentTiming != rates.Due && terms.PaymentTiming != rates.Anticipated {
		return fmt.Errorf("payment timing must be %q or %q, got %q", rates.Due, rates.Anticipated, terms.PaymentTiming)
	}

	if terms.TermMonths <= 0 {
		return fmt.Errorf("term must be greater than 0 months, got %d", terms.TermMonths)
	}

	if !terms.PaymentFrequency.Valid() {
		return fmt.Errorf("payment frequency must be one of %v, got %q", frequency.Names(), terms.PaymentFrequency)
	}

	if terms.QuotationFrequency != "" && !terms.QuotationFrequency.Valid() {
		return fmt.Errorf("rate quotation frequency must be one of %v, got %q", frequency.Names(), terms.QuotationFrequency)
	}

	if _, err := time.Parse(constants.DateTimeLayout, terms.StartDate); err != nil {
		return fmt.Errorf("start date must be in %s format, got %q", constants.DateTimeLayout, terms.StartDate)
	}

	if periodMonths := terms.PaymentFrequency.Months(); float64(terms.TermMonths) < periodMonths {
		return fmt.Errorf("term of %d months is shorter than one %s payment period",
			terms.TermMonths, terms.PaymentFrequency)
	}

	return nil
}

// ValidateExtraPayment checks an extraordinary payment's target period and
// amount against the schedule's period count.
func ValidateExtraPayment(period int, amount float64, totalPeriods int) error {
	if period < 1 || period > totalPeriods {
		return fmt.Errorf("extra payment period must be between 1 and %d, got %d", totalPeriods, period)
	}
	if amount <= 0 {
		return fmt.Errorf("extra payment amount must be greater than 0, got %v", amount)
	}
	return nil
}

// ValidateExtraPaymentFrequency checks that a scheduled extra-payment
// frequency is compatible with the payment frequency: at least as long, and
// an exact multiple of it.
func ValidateExtraPaymentFrequency(extraFreq, paymentFreq frequency.Frequency) error {
	if !extraFreq.Valid() {
		return fmt.Errorf("extra payment frequency must be one of %v, got %q", frequency.Names(), extraFreq)
	}
	if !paymentFreq.Valid() {
		return fmt.Errorf("payment frequency must be one of %v, got %q", frequency.Names(), paymentFreq)
	}

	extraMonths := extraFreq.Months()
	paymentMonths := paymentFreq.Months()

	if extraMonths < paymentMonths {
		return fmt.Errorf("extra payment frequency %s must be equal to or longer than payment frequency %s",
			extraFreq, paymentFreq)
	}

	ratio := extraMonths / paymentMonths
	if math.Abs(ratio-math.Round(ratio)) > 1e-9 {
		return fmt.Errorf("extra payment frequency %s must be an exact multiple of payment frequency %s",
			extraFreq, paymentFreq)
	}

	return nil
}
