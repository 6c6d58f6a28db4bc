// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/uribo/uribo/pkg/types"
	"github.com/uribo/uribo/pkg/uribofile"
)

// newDeleteCommand creates the `uribo delete` command.
func newDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a command from ./.uribo",
		Long: `Remove a command from the current directory's .uribo file.

Only the current directory's file is edited; definitions in parent
directories are left alone. The file is kept even when it becomes empty.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCommandNames(app, true),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.newService(cmd.Context(), "")
			if err != nil {
				return classifyError(err, types.ExitFailure)
			}
			if err := svc.Delete(cmd.Context(), uribofile.CommandName(args[0])); err != nil {
				return classifyError(err, types.ExitFailure)
			}
			return nil
		},
	}
}
