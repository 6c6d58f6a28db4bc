// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

// VirtualShellName selects the built-in shell interpreter.
const VirtualShellName ShellName = "virtual"

var (
	// ErrInvalidShellName is returned when a ShellName is empty or contains whitespace.
	ErrInvalidShellName = errors.New("invalid shell name")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ShellName names the program that runs shell-text records.
	ShellName string

	// InvalidShellNameError is returned when a ShellName is empty or contains whitespace.
	InvalidShellNameError struct {
		Value ShellName
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Shell runs shell-text records (default "sh", "virtual" for the built-in interpreter).
		Shell ShellName `json:"shell" mapstructure:"shell" yaml:"shell" toml:"shell"`
		// DefaultFile is the fallback .uribo file consulted after the ancestor walk.
		DefaultFile string `json:"default_file" mapstructure:"default_file" yaml:"default_file" toml:"default_file"`
		// Verbose enables debug logging and error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose" yaml:"verbose" toml:"verbose"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui" yaml:"ui" toml:"ui"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Color enables styled output.
		Color bool `json:"color" mapstructure:"color" yaml:"color" toml:"color"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Shell:       "sh",
		DefaultFile: "",
		Verbose:     false,
		UI: UIConfig{
			Color: true,
		},
	}
}

// String returns the string representation of the ShellName.
func (s ShellName) String() string { return string(s) }

// Validate returns an error if the shell name is empty or contains whitespace.
func (s ShellName) Validate() error {
	if s == "" || strings.ContainsAny(string(s), " \t\r\n") {
		return &InvalidShellNameError{Value: s}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidShellNameError) Error() string {
	return fmt.Sprintf("invalid shell name %q (must be non-empty and contain no whitespace)", string(e.Value))
}

// Unwrap returns ErrInvalidShellName for errors.Is() compatibility.
func (e *InvalidShellNameError) Unwrap() error { return ErrInvalidShellName }

// Validate checks every field and reports all failures at once.
func (c Config) Validate() error {
	var errs []error
	if err := c.Shell.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("shell: %w", err))
	}
	if c.DefaultFile != "" && strings.TrimSpace(c.DefaultFile) == "" {
		errs = append(errs, fmt.Errorf("default_file: must not be whitespace-only"))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so both the
// sentinel and a field's own sentinel match errors.Is().
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
