// Package config loads fixedincome settings from a caller-owned viper
// instance, with FIXEDINCOME_* environment overrides.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/meenmo/fixedincome/bond"
)

// EnvPrefix is prepended to environment overrides, e.g. FIXEDINCOME_BOND_COMPOUNDING.
const EnvPrefix = "FIXEDINCOME"

// Config is the top-level settings tree.
type Config struct {
	Bond    BondConfig    `mapstructure:"bond"    yaml:"bond"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// BondConfig holds analytics settings.
type BondConfig struct {
	Compounding int `mapstructure:"compounding" yaml:"compounding"` // periods per year
	MaxPeriods  int `mapstructure:"max_periods" yaml:"max_periods"` // cap on Cashflows schedule length
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "trace", "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads settings from v on top of the defaults. Environment variables
// override both. v may be nil, in which case only defaults and environment
// apply. Load never reads files itself; callers that want a config file
// configure v (SetConfigFile + ReadInConfig) before calling.
//
// Load mutates v: it registers the defaults (SetDefault), sets the env prefix
// and key replacer, and enables AutomaticEnv. Pass a dedicated instance if
// those settings must not leak into other uses of v.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bond.compounding", int(bond.DefaultConfig.Compounding))
	v.SetDefault("bond.max_periods", bond.DefaultConfig.MaxPeriods)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if err := c.BondConfig().Validate(); err != nil {
		return fmt.Errorf("config: bond: %w", err)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: logging.format %q must be \"text\" or \"json\"", c.Logging.Format)
	}
	return nil
}

// BondConfig converts the analytics settings into a bond.Config.
func (c *Config) BondConfig() bond.Config {
	return bond.Config{
		Compounding: bond.Frequency(c.Bond.Compounding),
		MaxPeriods:  c.Bond.MaxPeriods,
	}
}

// NewLogger builds a logger writing to w. An unparsable level falls back to info.
func (c *Config) NewLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(c.Logging.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// NewCalculator returns a bond.Calculator configured from c that logs to logger.
func (c *Config) NewCalculator(logger logrus.FieldLogger) *bond.Calculator {
	return bond.NewCalculator(c.BondConfig(), bond.WithLogger(logger))
}
