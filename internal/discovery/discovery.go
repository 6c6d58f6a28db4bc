// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uribo/uribo/pkg/uribofile"
)

const (
	// SourceAncestor indicates the command came from a .uribo file in the start
	// directory or one of its ancestors.
	SourceAncestor Source = iota
	// SourceFallback indicates the command came from the process-wide fallback file.
	SourceFallback
)

// ErrCommandNotFound is the sentinel error wrapped by NotFoundError.
var ErrCommandNotFound = errors.New("command not found")

type (
	// Source represents where a command definition was found.
	Source int

	// Resolver finds the nearest definition of a command name.
	// It only reads .uribo files; it never writes them.
	Resolver struct {
		store    *uribofile.Store
		startDir string
		fallback string
	}

	// Option configures a Resolver.
	Option func(*Resolver)

	// LookupResult is a resolved command together with where it was defined.
	LookupResult struct {
		Name    uribofile.CommandName
		Command uribofile.Command
		// Dir is the directory containing the defining file. Relative
		// working directories are resolved against it.
		Dir string
		// Path is the defining file.
		Path   string
		Source Source
	}

	// NotFoundError is returned when neither an ancestor nor the fallback
	// file defines the requested name.
	NotFoundError struct {
		Name uribofile.CommandName
	}
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceAncestor:
		return "ancestor"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%q command is not defined", string(e.Name))
}

// Unwrap returns ErrCommandNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrCommandNotFound }

// WithStartDir sets the directory the walk starts from. Relative paths are
// made absolute against the process working directory.
func WithStartDir(dir string) Option {
	return func(r *Resolver) {
		r.startDir = dir
	}
}

// WithFallback sets the process-wide fallback file consulted after the
// ancestor walk. An empty path disables the fallback.
func WithFallback(path string) Option {
	return func(r *Resolver) {
		r.fallback = path
	}
}

// New creates a Resolver reading through store. Without WithStartDir the
// walk starts at the process working directory.
func New(store *uribofile.Store, opts ...Option) (*Resolver, error) {
	r := &Resolver{store: store}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = uribofile.NewStore(nil)
	}

	if r.startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		r.startDir = wd
	}
	abs, err := filepath.Abs(r.startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving start directory %s: %w", r.startDir, err)
	}
	r.startDir = abs

	if r.fallback != "" && !filepath.IsAbs(r.fallback) {
		r.fallback = filepath.Join(r.startDir, r.fallback)
	}

	return r, nil
}

// StartDir returns the absolute directory the walk starts from.
func (r *Resolver) StartDir() string { return r.startDir }

// Fallback returns the absolute fallback file path, or "" when disabled.
func (r *Resolver) Fallback() string { return r.fallback }
