// Package constants provides shared constants for the roi-estimator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// MinutesPerHour converts task minutes into hours
	MinutesPerHour = 60.0

	// MinHoursPerDeal is the floor applied to the hours required to close a deal
	MinHoursPerDeal = 1.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Chart format constants
const (
	// ChartFormatPNG renders the bar chart as a PNG image
	ChartFormatPNG = "png"

	// ChartFormatSVG renders the bar chart as an SVG document
	ChartFormatSVG = "svg"

	// DefaultChartWidth is the container width used when none is given
	DefaultChartWidth = 640.0

	// DefaultChartScale is the device pixel ratio used when none is given
	DefaultChartScale = 1.0

	// MaxChartScale caps the device pixel ratio accepted from clients
	MaxChartScale = 4.0

	// MaxChartWidth caps the container width accepted from clients
	MaxChartWidth = 4096.0
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultCacheMaxEntries bounds the in-memory chart cache
	DefaultCacheMaxEntries = 256

	// DefaultCacheTTL is the default expiry for cached chart renders
	DefaultCacheTTL = "10m"
)
