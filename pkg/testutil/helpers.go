// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/dsalazarv/credit-forecast/internal/simulation"
)

// FindResult finds a scenario result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []simulation.Result, name string) *simulation.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
