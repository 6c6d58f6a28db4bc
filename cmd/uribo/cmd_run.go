// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/uribo/uribo/pkg/types"
	"github.com/uribo/uribo/pkg/uribofile"
)

const (
	runCommandName = "run"

	// defaultCommandName is run when `uribo run` is given no name.
	defaultCommandName uribofile.CommandName = "default"
)

// newRunCommand creates the `uribo run` command.
func newRunCommand(app *App) *cobra.Command {
	var shell string

	runCmd := &cobra.Command{
		Use:   "run [name] [args...]",
		Short: "Run a command from the nearest .uribo file",
		Long: `Run a command from the nearest .uribo file.

The name defaults to "default". Arguments after the name are appended to
the command's fixed arguments and forwarded verbatim, including anything
that looks like a flag. Flags for uribo itself go before the name.

Structured records run without a shell. Shell-text records run with
'<shell> -c'; --shell selects the shell, and the name "virtual" runs them
in the built-in interpreter.

The exit code is the command's exit code.`,
		Example: `  uribo run                 Run the "default" command
  uribo run test -run TestX Run "test" with two extra arguments
  uribo test -run TestX     Same, "run" is implied for unknown names
  uribo run --shell bash up Run "up" with bash`,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeCommandNames(app, false),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := defaultCommandName
			var extra []string
			if len(args) > 0 {
				name = uribofile.CommandName(args[0])
				extra = args[1:]
			}
			return runAlias(cmd, app, shell, name, extra)
		},
	}

	runCmd.Flags().SetInterspersed(false)
	runCmd.Flags().StringVar(&shell, "shell", "", `shell for shell-text records ("virtual" for the built-in interpreter)`)

	return runCmd
}

func runAlias(cmd *cobra.Command, app *App, shell string, name uribofile.CommandName, extra []string) error {
	ctx := cmd.Context()

	svc, err := app.newService(ctx, shell)
	if err != nil {
		return classifyError(err, types.ExitFailure)
	}

	res, err := svc.Run(ctx, name, extra)
	if err != nil {
		return classifyError(err, types.ExitFailure)
	}
	if res.Error != nil {
		return classifyError(res.Error, res.ExitCode)
	}
	if !res.ExitCode.IsSuccess() {
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}
