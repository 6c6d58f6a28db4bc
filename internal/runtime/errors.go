// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
)

var (
	// ErrLaunchFailed is the sentinel error wrapped by LaunchError.
	ErrLaunchFailed = errors.New("failed to launch command")
	// ErrArgsUnsupported is the sentinel error wrapped by ArgsUnsupportedError.
	ErrArgsUnsupported = errors.New("extra arguments are not supported for shell-text commands")
)

type (
	// LaunchError is returned when the child process could not be started:
	// the executable is missing or not executable, or the working directory
	// does not exist.
	LaunchError struct {
		Program string
		Dir     string
		Cause   error
	}

	// ArgsUnsupportedError is returned when extra arguments are passed to a
	// shell-text record, which has no argv to append them to.
	ArgsUnsupportedError struct {
		Count int
	}
)

// Error implements the error interface.
func (e *LaunchError) Error() string {
	if e.Dir != "" {
		return fmt.Sprintf("failed to launch %q in %s: %v", e.Program, e.Dir, e.Cause)
	}
	return fmt.Sprintf("failed to launch %q: %v", e.Program, e.Cause)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *LaunchError) Unwrap() []error { return []error{ErrLaunchFailed, e.Cause} }

// Error implements the error interface.
func (e *ArgsUnsupportedError) Error() string {
	return fmt.Sprintf("%s (got %d)", ErrArgsUnsupported, e.Count)
}

// Unwrap returns ErrArgsUnsupported for errors.Is() compatibility.
func (e *ArgsUnsupportedError) Unwrap() error { return ErrArgsUnsupported }
