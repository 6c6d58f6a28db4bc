// SPDX-License-Identifier: MPL-2.0

package uribofile

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is the sentinel error wrapped by FileNotFoundError.
	ErrFileNotFound = errors.New("uribo file not found")
	// ErrParse is the sentinel error wrapped by ParseError.
	ErrParse = errors.New("failed to parse uribo file")
	// ErrIO is the sentinel error wrapped by IOError.
	ErrIO = errors.New("uribo file i/o failure")
	// ErrNameNotDefined is the sentinel error wrapped by NameNotDefinedError.
	ErrNameNotDefined = errors.New("command is not defined")
)

type (
	// FileNotFoundError is returned by Store.Load when no file exists at Path.
	FileNotFoundError struct {
		Path string
	}

	// ParseError is returned when a file exists but its contents do not
	// decode into a valid Mapping.
	ParseError struct {
		Path  string
		Cause error
	}

	// IOError is returned for filesystem failures unrelated to decoding
	// (permissions, disk errors, rename failures).
	IOError struct {
		Path  string
		Op    string
		Cause error
	}

	// NameNotDefinedError is returned when a lookup or delete targets a name
	// that the mapping does not contain.
	NameNotDefinedError struct {
		Name CommandName
	}
)

// Error implements the error interface.
func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("%s does not exist", e.Path)
}

// Unwrap returns ErrFileNotFound for errors.Is() compatibility.
func (e *FileNotFoundError) Unwrap() error { return ErrFileNotFound }

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Cause)
}

// Unwrap returns both ErrParse and the decode cause so either can be matched.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Cause} }

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns both ErrIO and the underlying filesystem error.
func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Cause} }

// Error implements the error interface.
func (e *NameNotDefinedError) Error() string {
	return fmt.Sprintf("%q command is not defined", string(e.Name))
}

// Unwrap returns ErrNameNotDefined for errors.Is() compatibility.
func (e *NameNotDefinedError) Unwrap() error { return ErrNameNotDefined }
