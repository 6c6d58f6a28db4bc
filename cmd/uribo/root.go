// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/uribo/uribo/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// builtinCommands are added by cobra or fang at execution time and are
// therefore missing from rootCmd.Commands() when arguments are rewritten.
var builtinCommands = []string{"help", "completion", "man", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd}

// newRootCommand builds the command tree for one invocation.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uribo",
		Short: "Run per-directory command aliases",
		Long: TitleStyle.Render("uribo") + SubtitleStyle.Render(" - run per-directory command aliases") + `

uribo runs commands defined in .uribo files. A name is looked up in the
current directory's .uribo file, then in each parent directory's, and
finally in the default file named by URIBO_DEFAULT_FILE. The nearest
definition wins.

` + SubtitleStyle.Render("Examples:") + `
  uribo put build go build ./...   Define 'build' in ./.uribo
  uribo build -race                Run 'build' with an extra argument
  uribo find build                 Show where 'build' is defined
  uribo list                       List every visible command
  uribo delete build               Remove 'build' from ./.uribo`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.initLogging()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/uribo/config.cue)")

	rootCmd.AddCommand(
		newRunCommand(app),
		newFindCommand(app),
		newPutCommand(app),
		newDeleteCommand(app),
		newListCommand(app),
		newConfigCommand(app),
	)

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI with the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(int(executeArgs(context.Background(), NewApp(Dependencies{}), os.Args[1:])))
}

// executeArgs runs the command tree against args and returns the exit code.
func executeArgs(ctx context.Context, app *App, args []string) types.ExitCode {
	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(rewriteArgs(rootCmd, args))

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			renderError(w, err, app.verbose(), app.issueStyle())
		}),
	)
	if err == nil {
		return types.ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

// issueStyle returns the glamour style for issue pages.
func (a *App) issueStyle() string {
	if a.loaded != nil && !a.loaded.Config.UI.Color {
		return "notty"
	}
	return "dark"
}

// rewriteArgs inserts "run" before the first positional argument when it
// does not name a subcommand, so `uribo build` means `uribo run build`.
// Global flags before the name are kept in place.
func rewriteArgs(rootCmd *cobra.Command, args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			if flagTakesValue(rootCmd.PersistentFlags(), arg) {
				i++
			}
			continue
		}
		if isSubcommand(rootCmd, arg) {
			return args
		}
		return slices.Concat(args[:i:i], []string{runCommandName}, args[i:])
	}
	return args
}

// flagTakesValue reports whether arg is a flag whose value is the next argument.
func flagTakesValue(flags *pflag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}

	var f *pflag.Flag
	switch {
	case strings.HasPrefix(arg, "--"):
		f = flags.Lookup(arg[2:])
	case len(arg) == 2:
		f = flags.ShorthandLookup(arg[1:])
	}
	return f != nil && f.NoOptDefVal == ""
}

func isSubcommand(rootCmd *cobra.Command, name string) bool {
	if slices.Contains(builtinCommands, name) {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}
