package configprocessor

import (
	"strings"
	"testing"

	"github.com/dsalazarv/credit-forecast/pkg/frequency"
)

func TestValidateConfiguration(t *testing.T) {
	credit := CreditInfo{
		Name:              "Home",
		AnnualRatePercent: 12,
		TermMonths:        12,
		PaymentFrequency:  frequency.Monthly,
	}

	tests := []struct {
		name      string
		credit    CreditInfo
		scenarios []ScenarioInfo
		want      []string
	}{
		{
			name:   "Clean configuration",
			credit: credit,
			scenarios: []ScenarioInfo{
				{Name: "quarterly extras", Active: true, Extras: ExtraPlanInfo{
					ScheduledFrequency: frequency.Quarterly, ScheduledAmount: 1000,
				}},
			},
			want: nil,
		},
		{
			name: "Term not a multiple of the period",
			credit: CreditInfo{
				Name: "Home", AnnualRatePercent: 12, TermMonths: 13, PaymentFrequency: frequency.Quarterly,
			},
			want: []string{"not an exact multiple"},
		},
		{
			name: "Zero rate",
			credit: CreditInfo{
				Name: "Home", AnnualRatePercent: 0, TermMonths: 12, PaymentFrequency: frequency.Monthly,
			},
			want: []string{"annual rate is 0"},
		},
		{
			name:   "Scheduled extras never occur",
			credit: CreditInfo{Name: "Home", AnnualRatePercent: 12, TermMonths: 6, PaymentFrequency: frequency.Monthly},
			scenarios: []ScenarioInfo{
				{Name: "annual extras", Active: true, Extras: ExtraPlanInfo{
					ScheduledFrequency: frequency.Annual, ScheduledAmount: 1000,
				}},
			},
			want: []string{"never occur"},
		},
		{
			name:   "Ad-hoc beyond term",
			credit: credit,
			scenarios: []ScenarioInfo{
				{Name: "late abono", Active: true, Extras: ExtraPlanInfo{AdHocPeriods: []int{15}}},
			},
			want: []string{"beyond the 12-period term"},
		},
		{
			name:   "Inactive scenarios are skipped",
			credit: credit,
			scenarios: []ScenarioInfo{
				{Name: "late abono", Active: false, Extras: ExtraPlanInfo{AdHocPeriods: []int{15}}},
			},
			want: nil,
		},
	}

	p := NewProcessor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ValidateConfiguration(tt.credit, tt.scenarios)
			if len(got) != len(tt.want) {
				t.Fatalf("ValidateConfiguration() returned %d warnings (%v), want %d", len(got), got, len(tt.want))
			}
			for i, fragment := range tt.want {
				if !strings.Contains(got[i], fragment) {
					t.Errorf("warning %d = %q, want it to contain %q", i, got[i], fragment)
				}
			}
		})
	}
}
