// Package inference synthesizes the smallest FieldRule that a training
// dataset satisfies and that usefully constrains future data (spec
// §4.3, component C4).
package inference

// RangeStrategy selects how inference computes a numeric column's
// [min,max] bound.
type RangeStrategy string

const (
	RangeSpan     RangeStrategy = "span"
	RangeIQR      RangeStrategy = "iqr"
	RangeQuantile RangeStrategy = "quantile"
	RangeMAD      RangeStrategy = "mad"
)

// Config parametrizes every inference strategy. Defaults follow §4.3.
type Config struct {
	// Enums
	EnumMaxUnique   int     // max distinct values to ever emit as an enum
	EnumMinCoverage float64 // required coverage for both enum strategies
	EnumTopK        int     // max accepted set size for the tolerant strategy
	EnumTolerant    bool    // false = coverage strategy, true = tolerant strategy

	// Numeric range
	Range         RangeStrategy
	SpanMargin    float64 // default 0.10
	IQRMultiplier float64 // default 1.5
	QuantileLow   float64 // default 0.005
	QuantileHigh  float64 // default 0.995
	MADMultiplier float64 // default ~1.4826 * 3, configurable

	// Lengths
	LengthWidenFraction float64 // optional symmetric widening, default 0

	// Dates
	DateMarginDays int

	// Primary key
	MaxPKComboSize int

	// Enum/PK id-like name detection
	IDLikeSubstrings []string
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		EnumMaxUnique:       50,
		EnumMinCoverage:     0.95,
		EnumTopK:            20,
		EnumTolerant:        false,
		Range:               RangeSpan,
		SpanMargin:          0.10,
		IQRMultiplier:       1.5,
		QuantileLow:         0.005,
		QuantileHigh:        0.995,
		MADMultiplier:       4.4478, // ~3 * 1.4826 (MAD->sigma scale factor)
		LengthWidenFraction: 0,
		DateMarginDays:      1,
		MaxPKComboSize:      3,
		IDLikeSubstrings:    []string{"id", "key", "code", "number", "num", "uuid", "guid"},
	}
}
