// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/uribo/uribo/internal/config"
	"github.com/uribo/uribo/internal/issue"
	"github.com/uribo/uribo/pkg/types"
)

// newConfigCommand creates the `uribo config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage uribo configuration",
		Long: `Manage uribo configuration.

Configuration is stored in:
  - Linux: ~/.config/uribo/config.cue
  - macOS: ~/Library/Application Support/uribo/config.cue
  - Windows: %APPDATA%\uribo\config.cue

URIBO_SHELL, URIBO_DEFAULT_FILE, URIBO_VERBOSE and URIBO_UI_COLOR override
the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfig(cmd, app)
			},
		},
		&cobra.Command{
			Use:   "dump",
			Short: "Output the effective configuration as CUE",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				loaded, err := loadConfigStrict(cmd, app)
				if err != nil {
					return err
				}
				fmt.Fprint(app.stdout, config.GenerateCUE(loaded.Config))
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.FilePath(app.loadOptions())
				if err != nil {
					return classifyError(err, types.ExitFailure)
				}
				fmt.Fprintln(app.stdout, path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Create a default configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, created, err := config.CreateDefaultConfig(app.loadOptions())
				if err != nil {
					return classifyError(fmt.Errorf("failed to create config: %w", err), types.ExitFailure)
				}
				if !created {
					fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
					return nil
				}
				fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
				return nil
			},
		},
	)

	return cfgCmd
}

// loadOptions returns the config load options selected by global flags.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.flags.configPath}
}

// loadConfigStrict loads configuration without falling back to defaults.
func loadConfigStrict(cmd *cobra.Command, app *App) (*config.Loaded, error) {
	loaded, err := app.Config.Load(cmd.Context(), app.loadOptions())
	if err != nil {
		var ae *issue.ActionableError
		if !errors.As(err, &ae) {
			err = issue.NewErrorContext().
				WithOperation("load configuration").
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Run 'uribo config path' to locate the file").
				Wrap(err).
				BuildError()
		}
		return nil, classifyError(err, types.ExitFailure)
	}
	app.loaded = loaded
	app.applyConfig(loaded.Config)
	return loaded, nil
}

func showConfig(cmd *cobra.Command, app *App) error {
	loaded, err := loadConfigStrict(cmd, app)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	if loaded.Path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), loaded.Path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("shell"), valueStyle.Render(cfg.Shell.String()))
	defaultFile := valueStyle.Render(cfg.DefaultFile)
	if cfg.DefaultFile == "" {
		defaultFile = SubtitleStyle.Render("(none)")
	}
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("default_file"), defaultFile)
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("verbose"), valueStyle.Render(strconv.FormatBool(cfg.Verbose)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Color)))

	return nil
}
