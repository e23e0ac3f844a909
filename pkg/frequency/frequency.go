// Package frequency defines the payment and rate frequency units and their
// equivalence tables.
//
// Two parallel tables exist: a month-based one used for period-count and
// period-length arithmetic, and a day-based one used for day-count rate
// equivalence. They are deliberately not reconciled with each other (a month
// is 30 days in the day table but 365/12 days would be implied by the month
// table at the annual entry); callers choose a path by choosing which
// conversion they invoke.
package frequency

import (
	"fmt"
	"strings"
)

// Frequency identifies one of the supported payment/rate frequencies.
type Frequency string

const (
	Daily       Frequency = "daily"
	Biweekly    Frequency = "biweekly"
	Monthly     Frequency = "monthly"
	Bimonthly   Frequency = "bimonthly"
	Quarterly   Frequency = "quarterly"
	FourMonthly Frequency = "four-monthly"
	Semiannual  Frequency = "semiannual"
	Annual      Frequency = "annual"
)

// monthEquivalents maps each frequency to its length in months. Sub-monthly
// units are fractional.
var monthEquivalents = map[Frequency]float64{
	Daily:       1.0 / 30.0,
	Biweekly:    0.5,
	Monthly:     1,
	Bimonthly:   2,
	Quarterly:   3,
	FourMonthly: 4,
	Semiannual:  6,
	Annual:      12,
}

// dayEquivalents maps each frequency to its length in days on a 365-day year
// with 30-day months for everything shorter.
var dayEquivalents = map[Frequency]int{
	Daily:       1,
	Biweekly:    15,
	Monthly:     30,
	Bimonthly:   60,
	Quarterly:   90,
	FourMonthly: 120,
	Semiannual:  180,
	Annual:      365,
}

// All returns the supported frequencies in ascending period length.
func All() []Frequency {
	return []Frequency{Daily, Biweekly, Monthly, Bimonthly, Quarterly, FourMonthly, Semiannual, Annual}
}

// Parse converts a string to a Frequency, case-insensitively.
func Parse(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown frequency %q; expected one of %s", s, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns the string forms of all supported frequencies.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, f := range all {
		names[i] = string(f)
	}
	return names
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	_, ok := monthEquivalents[f]
	return ok
}

// Months returns the period length of f in month-equivalents.
func (f Frequency) Months() float64 {
	return monthEquivalents[f]
}

// Days returns the period length of f in day-equivalents.
func (f Frequency) Days() int {
	return dayEquivalents[f]
}

func (f Frequency) String() string {
	return string(f)
}
