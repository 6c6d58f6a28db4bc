// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

const (
	// ExitSuccess is returned when the command ran and succeeded.
	ExitSuccess ExitCode = 0
	// ExitFailure is returned for resolution and mutation failures.
	ExitFailure ExitCode = 1
	// ExitNoStatus is used when a child terminated without reporting an exit
	// code (for example, killed by a signal).
	ExitNoStatus ExitCode = 0
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// FromProcessState translates a finished child's state into the exit code
// the runner should exit with. A state without an exit code maps to ExitNoStatus.
func FromProcessState(state *os.ProcessState) ExitCode {
	if state == nil {
		return ExitNoStatus
	}
	code := state.ExitCode()
	if code < 0 {
		return ExitNoStatus
	}
	return ExitCode(code)
}

// FromWaitError extracts the exit code from the error returned by
// exec.Cmd.Run or Wait. ok is false when err did not come from a finished
// child (the process never started, or an I/O copy failed).
func FromWaitError(err error) (code ExitCode, ok bool) {
	if err == nil {
		return ExitSuccess, true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return FromProcessState(exitErr.ProcessState), true
	}
	return ExitFailure, false
}
