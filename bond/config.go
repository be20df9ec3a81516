package bond

import (
	"fmt"
	"sync/atomic"
)

// Frequency is the number of compounding (and coupon) periods per year.
type Frequency int

const (
	Annual     Frequency = 1
	SemiAnnual Frequency = 2
	Quarterly  Frequency = 4
	Monthly    Frequency = 12
)

func (f Frequency) String() string {
	switch f {
	case Annual:
		return "ANNUAL"
	case SemiAnnual:
		return "SEMI_ANNUAL"
	case Quarterly:
		return "QUARTERLY"
	case Monthly:
		return "MONTHLY"
	default:
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
}

// Config holds the settings shared by every formula in one evaluation.
type Config struct {
	// Compounding is the periods-per-year used both to de-annualise the
	// yield and coupon and to count periods to maturity.
	Compounding Frequency

	// MaxPeriods caps the length of a schedule built by Cashflows.
	// Zero means DefaultMaxPeriods.
	MaxPeriods int
}

// DefaultMaxPeriods supports up to 100Y with monthly compounding.
const DefaultMaxPeriods = 1200

// DefaultConfig is semi-annual compounding.
var DefaultConfig = Config{
	Compounding: SemiAnnual,
	MaxPeriods:  DefaultMaxPeriods,
}

// Validate reports whether c can be used for an evaluation.
func (c Config) Validate() error {
	if c.Compounding <= 0 {
		return invalid("Config", "Compounding", float64(c.Compounding), "must be positive")
	}
	if c.MaxPeriods < 0 {
		return invalid("Config", "MaxPeriods", float64(c.MaxPeriods), "must not be negative")
	}
	return nil
}

func (c Config) maxPeriods() int {
	if c.MaxPeriods <= 0 {
		return DefaultMaxPeriods
	}
	return c.MaxPeriods
}

// active is the process-wide configuration read by the package-level
// functions (PresentValue, Duration, Convexity, Analyze, Cashflows).
var active atomic.Pointer[Config]

func init() {
	SetConfig(DefaultConfig)
}

// SetConfig replaces the process-wide configuration. It is not validated
// here; evaluations reject an invalid configuration.
//
// Every package-level call made after SetConfig returns observes the new
// value. Callers that need isolation should use a Calculator instead.
func SetConfig(c Config) {
	active.Store(&c)
}

// GetConfig returns the process-wide configuration.
func GetConfig() Config {
	return *active.Load()
}

// SetCompoundingFrequency sets the process-wide periods-per-year used by all
// subsequent package-level calls until changed again.
func SetCompoundingFrequency(f Frequency) {
	c := GetConfig()
	c.Compounding = f
	SetConfig(c)
}

// CompoundingFrequency returns the process-wide periods-per-year.
func CompoundingFrequency() Frequency {
	return GetConfig().Compounding
}
