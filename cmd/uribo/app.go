// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/uribo/uribo/internal/app/alias"
	"github.com/uribo/uribo/internal/app/execute"
	"github.com/uribo/uribo/internal/config"
	"github.com/uribo/uribo/internal/runtime"
	"github.com/uribo/uribo/pkg/uribofile"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives the App and
	// delegates through it.
	App struct {
		Config config.Provider

		stdin   io.Reader
		stdout  io.Writer
		stderr  io.Writer
		workDir string
		store   *uribofile.Store

		logger *log.Logger
		flags  rootFlags

		// loaded caches the configuration for the current invocation.
		loaded *config.Loaded
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// WorkDir overrides the process working directory.
		WorkDir string
		// Store overrides the OS-backed .uribo store.
		Store *uribofile.Store
	}

	// rootFlags holds the global flag values.
	rootFlags struct {
		verbose    bool
		configPath string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	logger := log.NewWithOptions(deps.Stderr, log.Options{
		Prefix: config.AppName,
		Level:  log.WarnLevel,
	})

	return &App{
		Config:  deps.Config,
		stdin:   deps.Stdin,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
		workDir: deps.WorkDir,
		store:   deps.Store,
		logger:  logger,
	}
}

// initLogging installs the app logger as the slog default.
func (a *App) initLogging() {
	if a.flags.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	slog.SetDefault(slog.New(a.logger))
}

// verbose reports whether verbose output was requested by flag or config.
func (a *App) verbose() bool {
	if a.flags.verbose {
		return true
	}
	return a.loaded != nil && a.loaded.Config.Verbose
}

// loadConfig loads and caches the configuration. An explicit --config file
// must load. Failures of the default file fall back to the defaults plus the
// URIBO_* environment, with a warning.
func (a *App) loadConfig(ctx context.Context) (*config.Loaded, error) {
	if a.loaded != nil {
		return a.loaded, nil
	}

	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		if a.flags.configPath != "" {
			return nil, err
		}
		fmt.Fprintf(a.stderr, "%s %s\n", WarningStyle.Render("warning:"), formatErrorForDisplay(err, a.flags.verbose))
		loaded = &config.Loaded{Config: config.LoadDefaults()}
	}

	a.loaded = loaded
	a.applyConfig(loaded.Config)
	slog.Debug("configuration loaded", "path", loaded.Path)
	return loaded, nil
}

// applyConfig applies the UI-affecting configuration values.
func (a *App) applyConfig(cfg *config.Config) {
	if cfg.Verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	if !cfg.UI.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
		a.logger.SetColorProfile(termenv.Ascii)
	}
}

// newService builds the alias service for this invocation. shellOverride is
// the --shell flag value, empty when unset.
func (a *App) newService(ctx context.Context, shellOverride string) (*alias.Service, error) {
	loaded, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	sel, err := execute.ResolveShell(config.ShellName(shellOverride), loaded.Config)
	if err != nil {
		return nil, err
	}

	opts := []alias.Option{
		alias.WithFallback(loaded.Config.DefaultFile),
		alias.WithShell(sel),
		alias.WithIO(runtime.IOContext{Stdin: a.stdin, Stdout: a.stdout, Stderr: a.stderr}),
	}
	if a.workDir != "" {
		opts = append(opts, alias.WithWorkDir(a.workDir))
	}
	if a.store != nil {
		opts = append(opts, alias.WithStore(a.store))
	}

	return alias.New(opts...)
}
