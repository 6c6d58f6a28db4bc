// SPDX-License-Identifier: MPL-2.0

package uribofile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// KindExec is a structured record: an executable, fixed args and an
	// optional working directory. It is launched without a shell.
	KindExec Kind = iota
	// KindShell is a bare string of shell text handed to `<shell> -c`.
	KindShell
)

var (
	// ErrInvalidCommandName is the sentinel error wrapped by InvalidCommandNameError.
	ErrInvalidCommandName = errors.New("invalid command name")
	// ErrInvalidWorkDir is the sentinel error wrapped by InvalidWorkDirError.
	ErrInvalidWorkDir = errors.New("invalid working directory")
	// ErrInvalidCommand is the sentinel error wrapped by InvalidCommandError.
	ErrInvalidCommand = errors.New("invalid command")
)

type (
	// Kind discriminates the two record shapes a .uribo file can hold.
	Kind int

	// CommandName is the key a command is defined and invoked under.
	// A valid name is non-empty and not whitespace-only.
	CommandName string

	// InvalidCommandNameError is returned when a CommandName is empty or
	// whitespace-only.
	InvalidCommandNameError struct {
		Value CommandName
	}

	// WorkDir is a working directory override. Relative values are resolved
	// against the directory of the .uribo file that defines the command.
	// The zero value means "inherit the caller's working directory".
	WorkDir string

	// InvalidWorkDirError is returned when a WorkDir is whitespace-only.
	InvalidWorkDirError struct {
		Value WorkDir
	}

	// InvalidCommandError is returned when a record has nothing to run.
	InvalidCommandError struct {
		Kind   Kind
		Reason string
	}

	// Command is a single record of a .uribo file.
	//
	// For KindExec records Program, Args and WorkDir are meaningful.
	// For KindShell records only Script is.
	Command struct {
		Kind    Kind
		Program string
		Args    []string
		WorkDir WorkDir
		Script  string
	}

	// execRecord is the on-disk object shape of a KindExec record.
	execRecord struct {
		Command    string   `json:"command"`
		Args       []string `json:"args"`
		WorkingDir string   `json:"working_dir,omitempty"`
	}
)

// NewExec builds a structured record.
func NewExec(program string, args []string, workDir WorkDir) Command {
	return Command{
		Kind:    KindExec,
		Program: program,
		Args:    slices.Clone(args),
		WorkDir: workDir,
	}
}

// NewShell builds a shell-text record.
func NewShell(script string) Command {
	return Command{Kind: KindShell, Script: script}
}

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindExec:
		return "exec"
	case KindShell:
		return "shell"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e *InvalidCommandNameError) Error() string {
	return fmt.Sprintf("invalid command name %q (must not be empty or whitespace-only)", string(e.Value))
}

// Unwrap returns ErrInvalidCommandName for errors.Is() compatibility.
func (e *InvalidCommandNameError) Unwrap() error { return ErrInvalidCommandName }

// Validate returns an error if the name is empty or whitespace-only.
func (n CommandName) Validate() error {
	if strings.TrimSpace(string(n)) == "" {
		return &InvalidCommandNameError{Value: n}
	}
	return nil
}

// String returns the string representation of the CommandName.
func (n CommandName) String() string { return string(n) }

// Error implements the error interface.
func (e *InvalidWorkDirError) Error() string {
	return fmt.Sprintf("invalid working_dir %q (must not be whitespace-only)", string(e.Value))
}

// Unwrap returns ErrInvalidWorkDir for errors.Is() compatibility.
func (e *InvalidWorkDirError) Unwrap() error { return ErrInvalidWorkDir }

// Validate returns an error if the WorkDir is set but whitespace-only.
func (w WorkDir) Validate() error {
	if w != "" && strings.TrimSpace(string(w)) == "" {
		return &InvalidWorkDirError{Value: w}
	}
	return nil
}

// IsSet reports whether the record overrides the working directory.
func (w WorkDir) IsSet() bool { return w != "" }

// String returns the string representation of the WorkDir.
func (w WorkDir) String() string { return string(w) }

// Error implements the error interface.
func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid %s command: %s", e.Kind, e.Reason)
}

// Unwrap returns ErrInvalidCommand for errors.Is() compatibility.
func (e *InvalidCommandError) Unwrap() error { return ErrInvalidCommand }

// Validate checks that the record has something to run.
func (c Command) Validate() error {
	switch c.Kind {
	case KindExec:
		if strings.TrimSpace(c.Program) == "" {
			return &InvalidCommandError{Kind: c.Kind, Reason: `"command" must not be empty`}
		}
		return c.WorkDir.Validate()
	case KindShell:
		if strings.TrimSpace(c.Script) == "" {
			return &InvalidCommandError{Kind: c.Kind, Reason: "shell text must not be empty"}
		}
		return nil
	default:
		return &InvalidCommandError{Kind: c.Kind, Reason: "unknown record kind"}
	}
}

// Equal reports whether two records describe the same invocation.
// A nil and an empty Args slice are considered equal.
func (c Command) Equal(other Command) bool {
	return c.Kind == other.Kind &&
		c.Program == other.Program &&
		slices.Equal(c.Args, other.Args) &&
		c.WorkDir == other.WorkDir &&
		c.Script == other.Script
}

// MarshalJSON writes shell records as a bare string and exec records as an
// object. Args is always present; working_dir only when set.
func (c Command) MarshalJSON() ([]byte, error) {
	if c.Kind == KindShell {
		return marshalPlain(c.Script)
	}
	args := c.Args
	if args == nil {
		args = []string{}
	}
	return marshalPlain(execRecord{
		Command:    c.Program,
		Args:       args,
		WorkingDir: string(c.WorkDir),
	})
}

// marshalPlain is json.Marshal without HTML escaping, so shell operators
// such as && stay readable in the file.
func marshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON accepts either record shape.
func (c *Command) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("empty command record")
	}

	switch trimmed[0] {
	case '"':
		var script string
		if err := json.Unmarshal(trimmed, &script); err != nil {
			return err
		}
		*c = NewShell(script)
		return nil
	case '{':
		var rec execRecord
		if err := json.Unmarshal(trimmed, &rec); err != nil {
			return err
		}
		*c = NewExec(rec.Command, rec.Args, WorkDir(rec.WorkingDir))
		return nil
	default:
		return fmt.Errorf("command record must be a string or an object, got %s", trimmed)
	}
}
