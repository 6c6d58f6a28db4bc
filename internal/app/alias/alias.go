// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/uribo/uribo/internal/app/execute"
	"github.com/uribo/uribo/internal/discovery"
	"github.com/uribo/uribo/internal/runtime"
	"github.com/uribo/uribo/pkg/uribofile"
)

// ErrNoConfigFile is the sentinel error wrapped by NoConfigFileError.
var ErrNoConfigFile = errors.New("no .uribo file")

type (
	// NoConfigFileError is returned by Delete when the working directory
	// holds no .uribo file.
	NoConfigFileError struct {
		Dir string
	}

	// Service runs and edits uribo commands relative to a working directory.
	Service struct {
		store    *uribofile.Store
		registry *runtime.Registry
		workDir  string
		fallback string
		shell    execute.ShellSelection
		io       *runtime.IOContext
	}

	// Option configures a Service.
	Option func(*Service)
)

// Error implements the error interface.
func (e *NoConfigFileError) Error() string {
	return uribofile.FileName + " file does not exist in the current directory"
}

// Unwrap returns ErrNoConfigFile for errors.Is() compatibility.
func (e *NoConfigFileError) Unwrap() error { return ErrNoConfigFile }

// WithStore sets the store used for every read and write.
func WithStore(store *uribofile.Store) Option {
	return func(s *Service) { s.store = store }
}

// WithRegistry sets the runtimes Run dispatches to.
func WithRegistry(registry *runtime.Registry) Option {
	return func(s *Service) { s.registry = registry }
}

// WithWorkDir sets the directory resolution starts from and mutations target.
func WithWorkDir(dir string) Option {
	return func(s *Service) { s.workDir = dir }
}

// WithFallback sets the process-wide fallback file. Empty disables it.
func WithFallback(path string) Option {
	return func(s *Service) { s.fallback = path }
}

// WithShell sets the shell used for shell-text records.
func WithShell(sel execute.ShellSelection) Option {
	return func(s *Service) { s.shell = sel }
}

// WithIO sets the standard streams handed to executed commands.
func WithIO(io runtime.IOContext) Option {
	return func(s *Service) { s.io = &io }
}

// New creates a Service. Without WithWorkDir the process working directory
// is used; without WithStore the OS filesystem.
func New(opts ...Option) (*Service, error) {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = uribofile.NewStore(nil)
	}
	if s.registry == nil {
		s.registry = runtime.DefaultRegistry()
	}
	if s.shell.Name() == "" {
		s.shell = execute.ShellSelectionOf(runtime.DefaultShell, execute.ShellOriginDefault)
	}
	if s.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		s.workDir = wd
	}

	return s, nil
}

// WorkDir returns the directory the service operates from.
func (s *Service) WorkDir() string { return s.workDir }

// Path returns the .uribo file Put and Delete edit.
func (s *Service) Path() string { return uribofile.PathIn(s.workDir) }

func (s *Service) resolver() (*discovery.Resolver, error) {
	return discovery.New(s.store, discovery.WithStartDir(s.workDir), discovery.WithFallback(s.fallback))
}

// Find resolves name without running it.
func (s *Service) Find(ctx context.Context, name uribofile.CommandName) (discovery.LookupResult, error) {
	r, err := s.resolver()
	if err != nil {
		return discovery.LookupResult{}, err
	}
	return r.Resolve(ctx, name)
}

// List returns every command visible from the working directory.
func (s *Service) List(ctx context.Context) ([]discovery.LookupResult, error) {
	r, err := s.resolver()
	if err != nil {
		return nil, err
	}
	return r.List(ctx)
}

// Run resolves name and executes it with extra appended to its fixed args.
// The returned error covers resolution failures only; a command that could
// not be launched is reported through Result.Error.
func (s *Service) Run(ctx context.Context, name uribofile.CommandName, extra []string) (*runtime.Result, error) {
	lookup, err := s.Find(ctx, name)
	if err != nil {
		return nil, err
	}

	execCtx, err := execute.BuildExecutionContext(execute.BuildExecutionContextOptions{
		Context:   ctx,
		Lookup:    lookup,
		Selection: s.shell,
		Args:      extra,
		IO:        s.io,
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("running command",
		"name", name,
		"path", lookup.Path,
		"source", lookup.Source.String(),
		"shell", s.shell.Name().String(),
		"shell_origin", s.shell.Origin().String())

	return s.registry.Execute(execCtx), nil
}

// Put defines name in the working directory's .uribo file, creating the file
// when absent and replacing any existing definition.
func (s *Service) Put(ctx context.Context, name uribofile.CommandName, cmd uribofile.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := name.Validate(); err != nil {
		return err
	}
	if err := cmd.Validate(); err != nil {
		return err
	}

	path := s.Path()
	m, err := s.store.LoadOrEmpty(path)
	if err != nil {
		return err
	}
	m.Put(name, cmd)

	slog.Debug("saving command", "name", name, "path", path)
	return s.store.Save(path, m)
}

// Delete removes name from the working directory's .uribo file. The file is
// kept even when it becomes empty.
func (s *Service) Delete(ctx context.Context, name uribofile.CommandName) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.Path()
	exists, err := s.store.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		return &NoConfigFileError{Dir: s.workDir}
	}

	m, err := s.store.Load(path)
	if err != nil {
		return err
	}
	if err := m.Delete(name); err != nil {
		return err
	}

	slog.Debug("deleted command", "name", name, "path", path)
	return s.store.Save(path, m)
}
