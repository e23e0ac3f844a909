package schedule

import (
	"math"
	"testing"
)

func TestFixedInstallment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		periods   int
		expected  float64
		wantErr   bool
	}{
		{
			name:      "Standard annuity",
			principal: 100000,
			rate:      0.01,
			periods:   12,
			expected:  8884.878868,
		},
		{
			name:      "Zero rate splits principal evenly",
			principal: 12000,
			rate:      0,
			periods:   12,
			expected:  1000,
		},
		{
			name:      "Single period",
			principal: 1000,
			rate:      0.05,
			periods:   1,
			expected:  1050,
		},
		{
			name:      "Zero periods rejected",
			principal: 1000,
			rate:      0.01,
			periods:   0,
			wantErr:   true,
		},
		{
			name:      "Negative periods rejected",
			principal: 1000,
			rate:      0.01,
			periods:   -3,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FixedInstallment(tt.principal, tt.rate, tt.periods)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FixedInstallment() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.expected) > 1e-4 {
				t.Errorf("FixedInstallment() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFixedInstallmentZeroRateExact(t *testing.T) {
	got, err := FixedInstallment(9000, 0, 9)
	if err != nil {
		t.Fatalf("FixedInstallment() unexpected error: %v", err)
	}
	if got != 1000 {
		t.Errorf("FixedInstallment(9000, 0, 9) = %v, want exactly 1000", got)
	}
}

func TestInterestPortion(t *testing.T) {
	if got := InterestPortion(100000, 0.01); math.Abs(got-1000) > 1e-9 {
		t.Errorf("InterestPortion(100000, 0.01) = %v, want 1000", got)
	}
	if got := InterestPortion(0, 0.01); got != 0 {
		t.Errorf("InterestPortion(0, 0.01) = %v, want 0", got)
	}
}
