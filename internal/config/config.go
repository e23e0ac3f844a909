// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/dsalazarv/credit-forecast/pkg/configprocessor"
	"github.com/dsalazarv/credit-forecast/pkg/constants"
	"github.com/dsalazarv/credit-forecast/pkg/frequency"
	"github.com/dsalazarv/credit-forecast/pkg/rates"
	"github.com/dsalazarv/credit-forecast/pkg/schedule"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for credit-forecast.
type Configuration struct {
	Credit    Credit
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Credit holds the loan parameters all scenarios share.
type Credit struct {
	Name               string
	Principal          float64
	AnnualRatePercent  float64
	RateType           string
	PaymentTiming      string
	TermMonths         int
	PaymentFrequency   string
	StartDate          string
	QuotationFrequency string
}

// Scenario holds one extraordinary-payment plan to evaluate against the
// credit.
type Scenario struct {
	Name          string
	Active        bool
	ExtraPayments ExtraPayments
}

// ExtraPayments describes scheduled and ad-hoc extraordinary payments plus
// the recalculation policy.
type ExtraPayments struct {
	Policy             string // reduce-installment, reduce-term
	ScheduledFrequency string
	ScheduledAmount    float64
	AdHoc              []AdHocPayment
}

// AdHocPayment is a single extraordinary payment at a specific period.
type AdHocPayment struct {
	Period int
	Amount float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML configuration from an in-memory
// source, e.g. an HTTP request body.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Terms converts the configured credit into generator terms, applying
// defaults for omitted fields.
func (c *Credit) Terms() (schedule.CreditTerms, error) {
	paymentFreq, err := frequency.Parse(c.PaymentFrequency)
	if err != nil {
		return schedule.CreditTerms{}, fmt.Errorf("paymentFrequency: %w", err)
	}

	quotation := frequency.Annual
	if c.QuotationFrequency != "" {
		quotation, err = frequency.Parse(c.QuotationFrequency)
		if err != nil {
			return schedule.CreditTerms{}, fmt.Errorf("quotationFrequency: %w", err)
		}
	}

	rateType := rates.RateType(c.RateType)
	if c.RateType == "" {
		rateType = rates.Effective
	}

	timing := rates.Timing(c.PaymentTiming)
	if c.PaymentTiming == "" {
		timing = rates.Due
	}

	return schedule.CreditTerms{
		Principal:          c.Principal,
		AnnualRatePercent:  c.AnnualRatePercent,
		RateType:           rateType,
		PaymentTiming:      timing,
		TermMonths:         c.TermMonths,
		PaymentFrequency:   paymentFreq,
		StartDate:          c.StartDate,
		QuotationFrequency: quotation,
	}, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	paymentFreq, err := frequency.Parse(c.Credit.PaymentFrequency)
	if err != nil {
		// Hard validation happens later; no warnings derivable without a
		// valid payment frequency.
		return nil
	}

	credit := configprocessor.CreditInfo{
		Name:              c.Credit.Name,
		AnnualRatePercent: c.Credit.AnnualRatePercent,
		TermMonths:        c.Credit.TermMonths,
		PaymentFrequency:  paymentFreq,
	}

	var scenarios []configprocessor.ScenarioInfo
	for _, scenario := range c.Scenarios {
		info := configprocessor.ScenarioInfo{
			Name:   scenario.Name,
			Active: scenario.Active,
		}
		if f, err := frequency.Parse(scenario.ExtraPayments.ScheduledFrequency); err == nil {
			info.Extras.ScheduledFrequency = f
		}
		info.Extras.ScheduledAmount = scenario.ExtraPayments.ScheduledAmount
		for _, payment := range scenario.ExtraPayments.AdHoc {
			info.Extras.AdHocPeriods = append(info.Extras.AdHocPeriods, payment.Period)
		}
		scenarios = append(scenarios, info)
	}

	processor := configprocessor.NewProcessor()
	return processor.ValidateConfiguration(credit, scenarios)
}
