// Package constants provides shared constants for the credit-forecast application.
package constants

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerMonth is the fixed month length used for due-date arithmetic
	DaysPerMonth = 30

	// DaysPerYear is the year length backing the day-based rate equivalence table
	DaysPerYear = 365

	// CurrencyDecimals is the number of decimals monetary values are rounded to
	CurrencyDecimals = 2

	// DefaultCompoundingsPerYear is used when the rate quotation frequency has
	// no entry in the compounding lookup
	DefaultCompoundingsPerYear = 12

	// ReplaySafetyFactor bounds replay loops at ReplaySafetyFactor times the
	// nominal period count
	ReplaySafetyFactor = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes caps request bodies accepted by the API (1 MiB)
	DefaultMaxRequestSizeBytes = 1 << 20
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxAnnualRatePercent is the upper bound accepted for annual rates
	MaxAnnualRatePercent = 100.0
)
