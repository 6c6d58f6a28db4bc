// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/uribo/uribo/internal/discovery"
)

// completeCommandNames completes the first positional argument with the
// visible command names. With localOnly only names defined in the working
// directory's own .uribo file are offered.
func completeCommandNames(app *App, localOnly bool) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveDefault
		}

		svc, err := app.newService(cmd.Context(), "")
		if err != nil {
			slog.Debug("completion unavailable", "error", err)
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		results, err := svc.List(cmd.Context())
		if err != nil {
			slog.Debug("completion unavailable", "error", err)
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		completions := make([]cobra.Completion, 0, len(results))
		for _, r := range results {
			if localOnly && (r.Source != discovery.SourceAncestor || r.Dir != svc.WorkDir()) {
				continue
			}
			completions = append(completions, cobra.CompletionWithDesc(r.Name.String(), describeCommand(r.Command)))
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}
