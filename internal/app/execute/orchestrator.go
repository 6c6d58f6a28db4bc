// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/uribo/uribo/internal/config"
	"github.com/uribo/uribo/internal/discovery"
	"github.com/uribo/uribo/internal/runtime"
)

const (
	// ShellOriginDefault means neither the CLI nor the config chose a shell.
	ShellOriginDefault ShellOrigin = iota
	// ShellOriginConfig means the shell came from config.cue or URIBO_SHELL.
	ShellOriginConfig
	// ShellOriginFlag means the shell came from --shell.
	ShellOriginFlag
)

// ErrIncompleteLookup is returned when BuildExecutionContext is handed a
// lookup result that was not produced by a successful resolution.
var ErrIncompleteLookup = errors.New("incomplete lookup result")

type (
	// ShellOrigin records which precedence level chose the shell.
	ShellOrigin int

	// ShellSelection is the resolved shell together with where it came from.
	// Fields are unexported for immutability; use the accessors.
	ShellSelection struct {
		name   config.ShellName
		origin ShellOrigin
	}

	// BuildExecutionContextOptions configures execution-context construction.
	//
	// Lookup must come from a successful Resolve. All other fields are
	// optional and default to their zero values; a nil IO uses the process's
	// standard streams.
	BuildExecutionContextOptions struct {
		Context   context.Context
		Lookup    discovery.LookupResult
		Selection ShellSelection
		Args      []string
		IO        *runtime.IOContext
	}
)

// String returns a human-readable origin name.
func (o ShellOrigin) String() string {
	switch o {
	case ShellOriginDefault:
		return "default"
	case ShellOriginConfig:
		return "config"
	case ShellOriginFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// ShellSelectionOf creates a ShellSelection without validation. It is meant
// for test fixtures; production code goes through ResolveShell.
func ShellSelectionOf(name config.ShellName, origin ShellOrigin) ShellSelection {
	return ShellSelection{name: name, origin: origin}
}

// Name returns the selected shell.
func (s ShellSelection) Name() config.ShellName { return s.name }

// Origin returns the precedence level that chose the shell.
func (s ShellSelection) Origin() ShellOrigin { return s.origin }

// IsVirtual reports whether shell text runs in the built-in interpreter.
func (s ShellSelection) IsVirtual() bool { return s.name == config.VirtualShellName }

// ResolveShell applies shell-selection precedence:
//  1. CLI override (hard fail if invalid)
//  2. Config shell, which already includes the URIBO_SHELL override
//  3. runtime.DefaultShell
func ResolveShell(override config.ShellName, cfg *config.Config) (ShellSelection, error) {
	if override != "" {
		if err := override.Validate(); err != nil {
			return ShellSelection{}, fmt.Errorf("--shell: %w", err)
		}
		return ShellSelection{name: override, origin: ShellOriginFlag}, nil
	}

	if cfg != nil && cfg.Shell != "" {
		if err := cfg.Shell.Validate(); err != nil {
			return ShellSelection{}, fmt.Errorf("invalid shell in config: %w", err)
		}
		return ShellSelection{name: cfg.Shell, origin: ShellOriginConfig}, nil
	}

	return ShellSelection{name: runtime.DefaultShell, origin: ShellOriginDefault}, nil
}

// BuildExecutionContext converts options into a runtime.ExecutionContext.
// Extra arguments are copied so the caller may reuse its slice.
func BuildExecutionContext(opts BuildExecutionContextOptions) (*runtime.ExecutionContext, error) {
	if opts.Lookup.Name == "" || opts.Lookup.Dir == "" {
		return nil, fmt.Errorf("BuildExecutionContext: %w", ErrIncompleteLookup)
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	execCtx := runtime.NewExecutionContext(ctx, opts.Lookup.Command, opts.Lookup.Dir)
	execCtx.ExtraArgs = slices.Clone(opts.Args)
	if shell := opts.Selection.Name(); shell != "" {
		execCtx.Shell = shell.String()
	}
	if opts.IO != nil {
		execCtx.IO = *opts.IO
	}

	return execCtx, nil
}
