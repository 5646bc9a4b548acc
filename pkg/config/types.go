// Package config provides configuration loading and validation for tztail.
package config

import (
	"fmt"
	"time"

	"github.com/ccollicutt/tztail/pkg/timestamp"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Timezone is the destination timezone: an IANA name, "UTC" or "Local".
	Timezone string `yaml:"timezone"`

	// SourceTimezone is assumed for timestamps that carry no offset.
	SourceTimezone string `yaml:"source_timezone,omitempty"`

	// Format is a strftime format. When set, only this format is recognized
	// and rewritten timestamps keep it.
	Format string `yaml:"format,omitempty"`

	// Color controls highlighting of rewritten timestamps.
	Color ColorMode `yaml:"color,omitempty"`

	// Patterns are extra formats tried before the built-in ones when
	// Format is empty.
	Patterns []PatternConfig `yaml:"patterns,omitempty"`

	// Populated during validation
	location       *time.Location
	sourceLocation *time.Location
	formats        []*timestamp.Format
}

// Location returns the resolved destination timezone.
func (c *Config) Location() *time.Location {
	return c.location
}

// SourceLocation returns the resolved source timezone.
func (c *Config) SourceLocation() *time.Location {
	return c.sourceLocation
}

// CompiledPatterns returns the user patterns compiled into formats.
func (c *Config) CompiledPatterns() []*timestamp.Format {
	return c.formats
}

// PatternConfig defines an extra timestamp format for auto-detection.
type PatternConfig struct {
	Name string `yaml:"name"`

	// Pattern is a regex matching the timestamp. If it has capture groups,
	// the first one is the timestamp.
	Pattern string `yaml:"pattern"`

	// Layout is the Go time layout for parsing the timestamp.
	// See https://pkg.go.dev/time#pkg-constants for format.
	Layout string `yaml:"layout"`
}

// ColorMode represents when to highlight rewritten timestamps.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *ColorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *ColorMode) Set(v string) error {
	switch ColorMode(v) {
	case ColorAuto, ColorAlways, ColorNever:
		*c = ColorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *ColorMode) Type() string {
	return "colorMode"
}
