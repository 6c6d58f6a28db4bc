// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/uribo/uribo/pkg/types"
	"github.com/uribo/uribo/pkg/uribofile"
)

// NativeRuntime executes commands as host processes.
type NativeRuntime struct{}

// NewNativeRuntime creates a new native runtime
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runtime name
func (r *NativeRuntime) Name() string {
	return string(RuntimeTypeNative)
}

// Validate checks if a command can be executed
func (r *NativeRuntime) Validate(ctx *ExecutionContext) error {
	return validateCommon(ctx)
}

// Execute launches the child, waits for it, and reports its exit code.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	if err := r.Validate(ctx); err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	program, args := r.commandLine(ctx)
	cmd := exec.CommandContext(ctx.context(), program, args...)
	cmd.Dir = EffectiveWorkDir(ctx.Command, ctx.Dir)
	cmd.Stdin = ctx.IO.Stdin
	cmd.Stdout = ctx.IO.Stdout
	cmd.Stderr = ctx.IO.Stderr

	slog.Debug("launching command",
		"program", program,
		"args", args,
		"dir", cmd.Dir,
		"kind", ctx.Command.Kind)

	restore := absorbInterrupts()
	defer restore()

	if err := cmd.Start(); err != nil {
		return NewErrorResult(types.ExitFailure, &LaunchError{Program: program, Dir: cmd.Dir, Cause: err})
	}

	err := cmd.Wait()
	code, ok := types.FromWaitError(err)
	if !ok {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to wait for %q: %w", program, err))
	}

	slog.Debug("command finished", "program", program, "exit_code", code)
	return NewExitCodeResult(code)
}

// commandLine returns the program and arguments to start for ctx.
func (r *NativeRuntime) commandLine(ctx *ExecutionContext) (string, []string) {
	if ctx.Command.Kind == uribofile.KindShell {
		return ctx.shell(), []string{"-c", ctx.Command.Script}
	}
	return ctx.Command.Program, Argv(ctx.Command, ctx.ExtraArgs)
}
