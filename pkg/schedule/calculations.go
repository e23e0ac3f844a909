// Package schedule builds French-method (constant installment) amortization
// schedules.
package schedule

import (
	"fmt"
	"math"
)

// FixedInstallment calculates the constant periodic installment for a loan
// using the standard annuity formula. A zero period rate degenerates to a
// straight principal split.
func FixedInstallment(principal, periodRate float64, periods int) (float64, error) {
	if periods <= 0 {
		return 0, fmt.Errorf("installment requires a positive period count, got %d", periods)
	}

	if periodRate == 0 {
		return principal / float64(periods), nil
	}

	power := math.Pow(1+periodRate, float64(periods))
	return principal * (periodRate * power) / (power - 1), nil
}

// InterestPortion calculates the interest accrued on a balance over one
// period.
func InterestPortion(balance, periodRate float64) float64 {
	return balance * periodRate
}
