package config

import (
	"os"
)

// Default values for configuration.
const (
	DefaultSourceTimezone = "UTC"
	DefaultColor          = ColorAuto
)

// Environment variable names.
const (
	EnvTimezone       = "TZTAIL_TIMEZONE"
	EnvSourceTimezone = "TZTAIL_SOURCE_TIMEZONE"
	EnvFormat         = "TZTAIL_FORMAT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SourceTimezone: DefaultSourceTimezone,
		Color:          DefaultColor,
		Patterns:       []PatternConfig{},
	}
}

// FromEnvironment returns the default configuration with environment
// overrides applied. It is used when no config file is given.
func FromEnvironment() *Config {
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	return cfg
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if tz := os.Getenv(EnvTimezone); tz != "" {
		c.Timezone = tz
	}
	if tz := os.Getenv(EnvSourceTimezone); tz != "" {
		c.SourceTimezone = tz
	}
	if format := os.Getenv(EnvFormat); format != "" {
		c.Format = format
	}
}
