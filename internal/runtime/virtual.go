// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/uribo/uribo/pkg/types"
	"github.com/uribo/uribo/pkg/uribofile"
)

// VirtualRuntime interprets shell-text records with mvdan/sh instead of
// spawning a shell binary. External programs called by the script are still
// executed on the host.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a new virtual runtime
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name
func (r *VirtualRuntime) Name() string {
	return string(RuntimeTypeVirtual)
}

// Validate checks if a command can be executed
func (r *VirtualRuntime) Validate(ctx *ExecutionContext) error {
	if err := validateCommon(ctx); err != nil {
		return err
	}
	if ctx.Command.Kind != uribofile.KindShell {
		return fmt.Errorf("virtual runtime only runs shell-text commands, got %s", ctx.Command.Kind)
	}
	if _, err := r.parse(ctx.Command.Script); err != nil {
		return err
	}
	return nil
}

// Execute runs the record's shell text in-process.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	if err := r.Validate(ctx); err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	prog, err := r.parse(ctx.Command.Script)
	if err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	runner, err := interp.New(
		interp.Dir(EffectiveWorkDir(ctx.Command, ctx.Dir)),
		interp.StdIO(ctx.IO.Stdin, ctx.IO.Stdout, ctx.IO.Stderr),
	)
	if err != nil {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to create interpreter: %w", err))
	}

	restore := absorbInterrupts()
	defer restore()

	if err := runner.Run(ctx.context(), prog); err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return NewExitCodeResult(types.ExitCode(status))
		}
		return NewErrorResult(types.ExitFailure, fmt.Errorf("script execution failed: %w", err))
	}

	return NewSuccessResult()
}

func (r *VirtualRuntime) parse(script string) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "")
	if err != nil {
		return nil, fmt.Errorf("script syntax error: %w", err)
	}
	return prog, nil
}
