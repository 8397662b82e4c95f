package config

import (
	"github.com/ajitpratap0/strtemporal/pkg/errors"
	"github.com/ajitpratap0/strtemporal/pkg/logger"
	"github.com/ajitpratap0/strtemporal/pkg/strptime"
	"github.com/ajitpratap0/strtemporal/pkg/temporal"
)

// Config is the complete strtemporal configuration.
type Config struct {
	Convert ConvertConfig `yaml:"convert" json:"convert" mapstructure:"convert"`
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`
	Tracing TracingConfig `yaml:"tracing" json:"tracing" mapstructure:"tracing"`
}

// ConvertConfig describes one conversion.
type ConvertConfig struct {
	// Kind is date, time or datetime
	Kind string `yaml:"kind" json:"kind" mapstructure:"kind"`
	// Format is a strftime-style pattern; empty means sniff
	Format string `yaml:"format" json:"format" mapstructure:"format"`
	// Unit is ns, us or ms
	Unit string `yaml:"unit" json:"unit" mapstructure:"unit"`
	// Timezone is attached to naive datetimes
	Timezone string `yaml:"timezone" json:"timezone" mapstructure:"timezone"`
	// Ambiguous is earliest or latest
	Ambiguous     string `yaml:"ambiguous" json:"ambiguous" mapstructure:"ambiguous"`
	TimezoneAware bool   `yaml:"tz_aware" json:"tz_aware" mapstructure:"tz_aware"`
	Exact         bool   `yaml:"exact" json:"exact" mapstructure:"exact"`
	Cache         bool   `yaml:"cache" json:"cache" mapstructure:"cache"`
}

// LoggingConfig configures the global zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level" mapstructure:"level"`
	Encoding    string `yaml:"encoding" json:"encoding" mapstructure:"encoding"`
	Development bool   `yaml:"development" json:"development" mapstructure:"development"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	SamplingRate float64 `yaml:"sampling_rate" json:"sampling_rate" mapstructure:"sampling_rate"`
	PrettyPrint  bool    `yaml:"pretty_print" json:"pretty_print" mapstructure:"pretty_print"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			Kind:      "datetime",
			Unit:      "ns",
			Ambiguous: "earliest",
			Exact:     true,
			Cache:     true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		Tracing: TracingConfig{
			SamplingRate: 1.0,
		},
	}
}

// Validate checks every enumerated field and the format syntax.
func (c *Config) Validate() error {
	if _, err := c.Convert.ToOptions(); err != nil {
		return err
	}
	if _, err := c.Convert.TemporalKind(); err != nil {
		return err
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return errors.New(errors.ErrorTypeConfig, "logging encoding must be json or console").
			WithDetail("encoding", c.Logging.Encoding)
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return errors.New(errors.ErrorTypeConfig, "tracing sampling_rate must be within [0, 1]").
			WithDetail("sampling_rate", c.Tracing.SamplingRate)
	}
	return nil
}

// TemporalKind parses Kind.
func (c ConvertConfig) TemporalKind() (temporal.Kind, error) {
	return strptime.ParseKind(c.Kind)
}

// ToOptions converts the section into conversion options. Allocator,
// logger and stats are left for the caller.
func (c ConvertConfig) ToOptions() (temporal.Options, error) {
	unit, err := temporal.ParseTimeUnit(c.Unit)
	if err != nil {
		return temporal.Options{}, err
	}
	ambiguous, err := temporal.ParseAmbiguous(c.Ambiguous)
	if err != nil {
		return temporal.Options{}, err
	}
	if c.Format != "" {
		if _, err := strptime.Compile(c.Format); err != nil {
			return temporal.Options{}, err
		}
	}
	return temporal.Options{
		Format:        c.Format,
		Unit:          unit,
		Cache:         c.Cache,
		TimezoneAware: c.TimezoneAware,
		Timezone:      c.Timezone,
		Ambiguous:     ambiguous,
		NonExact:      !c.Exact,
	}, nil
}

// LoggerConfig converts the logging section for logger.Init.
func (l LoggingConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:       l.Level,
		Development: l.Development,
		Encoding:    l.Encoding,
	}
}
