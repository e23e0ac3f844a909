// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/dsalazarv/credit-forecast/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the output
	// date format.
	DateTimeLayout = constants.DateTimeLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// AddDays returns the string-formatted date offset by the given number of
// days relative to the given date.
func AddDays(date string, days int) (string, error) {
	t, err := time.Parse(DateTimeLayout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, 0, days).Format(DateTimeLayout), nil
}

// DaysPerPeriod converts a period length in month-equivalents to days using
// the fixed 30-day month. The truncation matters for sub-monthly frequencies
// (e.g. a daily period is 1/30 month = 1 day).
func DaysPerPeriod(months float64) int {
	return int(months * constants.DaysPerMonth)
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := time.Parse(DateTimeLayout, firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := time.Parse(DateTimeLayout, secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}
