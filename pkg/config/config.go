package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/tztail/pkg/timestamp"
)

// ErrTimezoneRequired is returned by RequireTimezone when no destination
// timezone was configured anywhere.
var ErrTimezoneRequired = errors.New("timezone is required (use --timezone or " + EnvTimezone + ")")

// Load reads and validates a configuration file.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Read reads a configuration file and applies environment overrides
// without validating. Callers that layer flags on top validate afterwards.
func Read(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	return cfg, nil
}

// Validate checks a configuration for errors, resolves timezones and
// compiles patterns. An empty Timezone is allowed here because the command
// line may still supply it; see RequireTimezone.
func Validate(cfg *Config) error {
	if cfg.Timezone != "" {
		loc, err := loadLocation(cfg.Timezone)
		if err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
		cfg.location = loc
	}

	if cfg.SourceTimezone == "" {
		cfg.SourceTimezone = DefaultSourceTimezone
	}
	loc, err := loadLocation(cfg.SourceTimezone)
	if err != nil {
		return fmt.Errorf("source_timezone: %w", err)
	}
	cfg.sourceLocation = loc

	if cfg.Color == "" {
		cfg.Color = DefaultColor
	}
	if err := cfg.Color.Set(string(cfg.Color)); err != nil {
		return fmt.Errorf("color: invalid value %q: %w", cfg.Color, err)
	}

	if cfg.Format != "" {
		if _, err := timestamp.NewFixedParser(cfg.Format); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}

	cfg.formats = nil
	for i := range cfg.Patterns {
		f, err := validatePattern(&cfg.Patterns[i])
		if err != nil {
			return fmt.Errorf("patterns[%d] (%s): %w", i, cfg.Patterns[i].Name, err)
		}
		cfg.formats = append(cfg.formats, f)
	}

	return nil
}

// RequireTimezone reports whether the configuration names a destination
// timezone. Call it after command-line overrides have been applied.
func (c *Config) RequireTimezone() error {
	if c.Timezone == "" || c.location == nil {
		return ErrTimezoneRequired
	}
	return nil
}

func validatePattern(p *PatternConfig) (*timestamp.Format, error) {
	if p.Name == "" {
		return nil, errors.New("name is required")
	}
	if p.Pattern == "" {
		return nil, errors.New("pattern is required")
	}
	return timestamp.NewFormat(p.Name, p.Pattern, p.Layout)
}

func loadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}
