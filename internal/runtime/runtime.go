// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/uribo/uribo/pkg/types"
	"github.com/uribo/uribo/pkg/uribofile"
)

// Runtime type constants for the supported execution environments.
const (
	RuntimeTypeNative  RuntimeType = "native"
	RuntimeTypeVirtual RuntimeType = "virtual"

	// DefaultShell runs shell-text records when no shell is configured.
	DefaultShell = "sh"
	// VirtualShell is the shell name that selects the in-process interpreter.
	VirtualShell = "virtual"
)

type (
	// IOContext holds the standard streams handed to the child.
	IOContext struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ExecutionContext contains all information needed to execute a command
	ExecutionContext struct {
		// Context is the Go context for cancellation
		Context context.Context
		// Command is the resolved record
		Command uribofile.Command
		// Dir is the directory holding the .uribo file that defined Command.
		// Relative working directories are resolved against it.
		Dir string
		// ExtraArgs are appended after the record's fixed args.
		ExtraArgs []string
		// Shell interprets shell-text records (default: DefaultShell)
		Shell string
		// IO carries the child's standard streams
		IO IOContext
	}

	// Result contains the result of a command execution
	Result struct {
		// ExitCode is the code uribo should exit with
		ExitCode types.ExitCode
		// Error is set when the command could not be run at all
		Error error
	}

	// Runtime defines the interface for command execution
	Runtime interface {
		// Name returns the runtime name
		Name() string
		// Execute runs a command in this runtime
		Execute(ctx *ExecutionContext) *Result
		// Validate checks if a command can be executed with this runtime
		Validate(ctx *ExecutionContext) error
	}

	// RuntimeType identifies the type of runtime.
	//
	//nolint:revive // RuntimeType is more descriptive than Type for external callers
	RuntimeType string

	// Registry holds all available runtimes
	Registry struct {
		runtimes map[RuntimeType]Runtime
	}
)

// NewExecutionContext creates an execution context wired to the process's
// standard streams and the default shell.
func NewExecutionContext(ctx context.Context, cmd uribofile.Command, dir string) *ExecutionContext {
	return &ExecutionContext{
		Context: ctx,
		Command: cmd,
		Dir:     dir,
		Shell:   DefaultShell,
		IO: IOContext{
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		},
	}
}

// context returns the Go context, defaulting to context.Background.
func (ctx *ExecutionContext) context() context.Context {
	if ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}

// shell returns the configured shell, defaulting to DefaultShell.
func (ctx *ExecutionContext) shell() string {
	if ctx.Shell == "" {
		return DefaultShell
	}
	return ctx.Shell
}

// Success returns true if the command executed successfully
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// NewRegistry creates a new runtime registry
func NewRegistry() *Registry {
	return &Registry{
		runtimes: make(map[RuntimeType]Runtime),
	}
}

// DefaultRegistry returns a registry holding the native and virtual runtimes.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(RuntimeTypeNative, NewNativeRuntime())
	reg.Register(RuntimeTypeVirtual, NewVirtualRuntime())
	return reg
}

// Register adds a runtime to the registry
func (r *Registry) Register(typ RuntimeType, rt Runtime) {
	r.runtimes[typ] = rt
}

// Get returns a runtime by type
func (r *Registry) Get(typ RuntimeType) (Runtime, error) {
	rt, ok := r.runtimes[typ]
	if !ok {
		return nil, fmt.Errorf("runtime '%s' not registered", typ)
	}
	return rt, nil
}

// TypeFor returns the runtime type that should run ctx.
func TypeFor(ctx *ExecutionContext) RuntimeType {
	if ctx.Command.Kind == uribofile.KindShell && ctx.shell() == VirtualShell {
		return RuntimeTypeVirtual
	}
	return RuntimeTypeNative
}

// Execute runs a command using the runtime selected for the execution context
func (r *Registry) Execute(ctx *ExecutionContext) *Result {
	rt, err := r.Get(TypeFor(ctx))
	if err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	if err := rt.Validate(ctx); err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	return rt.Execute(ctx)
}

// validateCommon checks what every runtime requires of a context.
func validateCommon(ctx *ExecutionContext) error {
	if err := ctx.Command.Validate(); err != nil {
		return err
	}
	if ctx.Command.Kind == uribofile.KindShell && len(ctx.ExtraArgs) > 0 {
		return &ArgsUnsupportedError{Count: len(ctx.ExtraArgs)}
	}
	return nil
}
