package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsalazarv/credit-forecast/pkg/frequency"
	"github.com/dsalazarv/credit-forecast/pkg/rates"
)

const sampleConfig = `
credit:
  name: Home loan
  principal: 100000
  annualRatePercent: 12
  rateType: nominal
  paymentTiming: due
  termMonths: 12
  paymentFrequency: monthly
  startDate: "2024-01-01"
  quotationFrequency: annual
scenarios:
  - name: quarterly extras
    active: true
    extraPayments:
      policy: reduce-term
      scheduledFrequency: quarterly
      scheduledAmount: 5000
  - name: one-off
    active: false
    extraPayments:
      policy: reduce-installment
      adHoc:
        - period: 3
          amount: 10000
logging:
  level: debug
  format: console
output:
  format: csv
`

func writeSampleConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatalf("failed to write sample config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeSampleConfig(t))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Credit.Principal != 100000 {
		t.Errorf("Credit.Principal = %v, want 100000", conf.Credit.Principal)
	}
	if conf.Credit.PaymentFrequency != "monthly" {
		t.Errorf("Credit.PaymentFrequency = %q, want \"monthly\"", conf.Credit.PaymentFrequency)
	}
	if len(conf.Scenarios) != 2 {
		t.Fatalf("len(Scenarios) = %d, want 2", len(conf.Scenarios))
	}
	if conf.Scenarios[0].ExtraPayments.Policy != "reduce-term" {
		t.Errorf("scenario 0 policy = %q, want \"reduce-term\"", conf.Scenarios[0].ExtraPayments.Policy)
	}
	if got := conf.Scenarios[1].ExtraPayments.AdHoc[0].Amount; got != 10000 {
		t.Errorf("scenario 1 ad-hoc amount = %v, want 10000", got)
	}
	if conf.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want \"debug\"", conf.Logging.Level)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Output.Format = %q, want \"csv\"", conf.Output.Format)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("LoadConfiguration() with missing file expected error, got nil")
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Credit.TermMonths != 12 {
		t.Errorf("Credit.TermMonths = %d, want 12", conf.Credit.TermMonths)
	}
}

func TestCreditTerms(t *testing.T) {
	credit := Credit{
		Name:               "Home loan",
		Principal:          100000,
		AnnualRatePercent:  12,
		RateType:           "nominal",
		PaymentTiming:      "due",
		TermMonths:         12,
		PaymentFrequency:   "monthly",
		StartDate:          "2024-01-01",
		QuotationFrequency: "annual",
	}

	terms, err := credit.Terms()
	if err != nil {
		t.Fatalf("Terms() error = %v", err)
	}
	if terms.PaymentFrequency != frequency.Monthly {
		t.Errorf("PaymentFrequency = %v, want monthly", terms.PaymentFrequency)
	}
	if terms.RateType != rates.Nominal {
		t.Errorf("RateType = %v, want nominal", terms.RateType)
	}
}

func TestCreditTermsDefaults(t *testing.T) {
	credit := Credit{
		Principal:         100000,
		AnnualRatePercent: 12,
		TermMonths:        12,
		PaymentFrequency:  "monthly",
		StartDate:         "2024-01-01",
	}

	terms, err := credit.Terms()
	if err != nil {
		t.Fatalf("Terms() error = %v", err)
	}
	if terms.QuotationFrequency != frequency.Annual {
		t.Errorf("QuotationFrequency default = %v, want annual", terms.QuotationFrequency)
	}
	if terms.RateType != rates.Effective {
		t.Errorf("RateType default = %v, want effective", terms.RateType)
	}
	if terms.PaymentTiming != rates.Due {
		t.Errorf("PaymentTiming default = %v, want due", terms.PaymentTiming)
	}
}

func TestCreditTermsInvalidFrequency(t *testing.T) {
	credit := Credit{PaymentFrequency: "weekly"}
	if _, err := credit.Terms(); err == nil {
		t.Errorf("Terms() with invalid frequency expected error, got nil")
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf := Configuration{
		Credit: Credit{
			Name:              "Odd term",
			AnnualRatePercent: 12,
			TermMonths:        13,
			PaymentFrequency:  "quarterly",
		},
	}

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 1 {
		t.Fatalf("ValidateConfiguration() returned %d warnings (%v), want 1", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "not an exact multiple") {
		t.Errorf("warning = %q, want mention of inexact multiple", warnings[0])
	}
}

func TestValidateConfigurationInvalidFrequencyYieldsNoWarnings(t *testing.T) {
	conf := Configuration{Credit: Credit{PaymentFrequency: "weekly"}}
	if warnings := conf.ValidateConfiguration(); warnings != nil {
		t.Errorf("ValidateConfiguration() = %v, want nil for unparseable frequency", warnings)
	}
}
