// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uribo/uribo/pkg/types"
	"github.com/uribo/uribo/pkg/uribofile"
)

// newPutCommand creates the `uribo put` command.
func newPutCommand(app *App) *cobra.Command {
	var (
		workDir   string
		shellText bool
	)

	putCmd := &cobra.Command{
		Use:   "put <name> <command> [args...] [-w <path>]",
		Short: "Define a command in ./.uribo",
		Long: `Define a command in the current directory's .uribo file.

The file is created when missing and an existing definition of the name is
replaced. Flags go before the name; everything after the command is stored
as its fixed arguments, except a trailing '-w <path>' or '--working-dir <path>'
which sets the working directory. Put '--' before the name to store a
trailing -w literally.

--working-dir is stored as given. A relative path is resolved against the
directory holding the .uribo file when the command runs.

--shell-text stores the command and its arguments joined with spaces as a
single line of shell text, run with '<shell> -c'.`,
		Example: `  uribo put build go build ./...
  uribo put -w web serve npm run dev
  uribo put serve npm run dev -w web
  uribo put --shell-text up 'docker compose up -d && docker compose logs -f'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rest := args[2:]
			if cmd.ArgsLenAtDash() < 0 {
				var trailing string
				var found bool
				if rest, trailing, found = splitTrailingWorkDir(rest); found {
					if cmd.Flags().Changed("working-dir") {
						return classifyError(errors.New("--working-dir given both before the name and after the arguments"), types.ExitFailure)
					}
					workDir = trailing
				}
			}

			rec, err := newRecord(args[1], rest, workDir, shellText)
			if err != nil {
				return classifyError(err, types.ExitFailure)
			}

			svc, err := app.newService(cmd.Context(), "")
			if err != nil {
				return classifyError(err, types.ExitFailure)
			}
			if err := svc.Put(cmd.Context(), uribofile.CommandName(args[0]), rec); err != nil {
				return classifyError(err, types.ExitFailure)
			}
			return nil
		},
	}

	putCmd.Flags().SetInterspersed(false)
	putCmd.Flags().StringVarP(&workDir, "working-dir", "w", "", "working directory, relative to the .uribo file's directory")
	putCmd.Flags().BoolVar(&shellText, "shell-text", false, "store the command line as shell text")
	putCmd.MarkFlagsMutuallyExclusive("working-dir", "shell-text")
	_ = putCmd.MarkFlagDirname("working-dir")

	return putCmd
}

// newRecord builds the record stored by `uribo put`.
func newRecord(program string, args []string, workDir string, shellText bool) (uribofile.Command, error) {
	if !shellText {
		return uribofile.NewExec(program, args, uribofile.WorkDir(workDir)), nil
	}
	if workDir != "" {
		return uribofile.Command{}, errors.New("--working-dir cannot be combined with --shell-text")
	}
	return uribofile.NewShell(strings.Join(append([]string{program}, args...), " ")), nil
}

// splitTrailingWorkDir removes a trailing -w/--working-dir flag from the
// command's arguments and returns its value.
func splitTrailingWorkDir(args []string) ([]string, string, bool) {
	n := len(args)
	if n >= 1 {
		for _, prefix := range []string{"--working-dir=", "-w="} {
			if v, ok := strings.CutPrefix(args[n-1], prefix); ok {
				return args[:n-1], v, true
			}
		}
	}
	if n >= 2 && (args[n-2] == "-w" || args[n-2] == "--working-dir") {
		return args[:n-2], args[n-1], true
	}
	return args, "", false
}
