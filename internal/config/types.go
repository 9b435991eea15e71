// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultCommandTimeout bounds launched processes unless configured.
	DefaultCommandTimeout = 10 * time.Second
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidTimeout is returned when command.timeout is not a positive duration.
	ErrInvalidTimeout = errors.New("invalid command timeout")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidTimeoutError is returned when a timeout string does not parse or
	// is not positive.
	InvalidTimeoutError struct {
		Value string
		Err   error
	}

	// InvalidConfigError collects every field error found by Validate.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the complete zipper configuration.
	Config struct {
		UI      UIConfig      `json:"ui" mapstructure:"ui" toml:"ui"`
		Unpack  UnpackConfig  `json:"unpack" mapstructure:"unpack" toml:"unpack"`
		Command CommandConfig `json:"command" mapstructure:"command" toml:"command"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Verbose enables debug logging and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		// ColorScheme selects the glamour style for issue pages.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
	}

	// UnpackConfig configures `zipper unpack`.
	UnpackConfig struct {
		// DefaultDest is used when --dest is not given. Empty means the
		// current directory.
		DefaultDest string `json:"default_dest" mapstructure:"default_dest" toml:"default_dest"`
	}

	// CommandConfig configures `zipper exec`.
	CommandConfig struct {
		// Timeout is a Go duration string such as "10s" or "2m".
		Timeout string `json:"timeout" mapstructure:"timeout" toml:"timeout"`
		// SandboxSpawn routes launches through the host spawn helper when
		// running inside Flatpak or Snap.
		SandboxSpawn bool `json:"sandbox_spawn" mapstructure:"sandbox_spawn" toml:"sandbox_spawn"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Command: CommandConfig{
			Timeout:      DefaultCommandTimeout.String(),
			SandboxSpawn: true,
		},
	}
}

// Validate returns nil if the ColorScheme is one of the known schemes.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// GlamourStyle maps the scheme to a glamour standard style name.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// TimeoutDuration parses Timeout. An empty value yields DefaultCommandTimeout.
func (c CommandConfig) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(c.Timeout) == "" {
		return DefaultCommandTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, &InvalidTimeoutError{Value: c.Timeout, Err: err}
	}
	if d <= 0 {
		return 0, &InvalidTimeoutError{Value: c.Timeout, Err: errors.New("must be positive")}
	}
	return d, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Command.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidTimeoutError) Error() string {
	return fmt.Sprintf("invalid command timeout %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidTimeout for errors.Is() compatibility.
func (e *InvalidTimeoutError) Unwrap() error { return ErrInvalidTimeout }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns the sentinel and every field error, so errors.Is matches
// ErrInvalidConfig as well as the per-field sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
