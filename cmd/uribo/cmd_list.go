// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"

	"github.com/uribo/uribo/internal/discovery"
	"github.com/uribo/uribo/pkg/types"
	"github.com/uribo/uribo/pkg/uribofile"
)

// newListCommand creates the `uribo list` command.
func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the commands visible from the current directory",
		Long: `List the commands visible from the current directory.

Each name is shown once, with the definition that 'uribo run' would use.
Names shadowed by a nearer .uribo file are not shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.newService(cmd.Context(), "")
			if err != nil {
				return classifyError(err, types.ExitFailure)
			}
			results, err := svc.List(cmd.Context())
			if err != nil {
				return classifyError(err, types.ExitFailure)
			}

			if len(results) == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("No commands defined."))
				return nil
			}
			fmt.Fprintln(app.stdout, renderCommandTable(results))
			return nil
		},
	}
}

// renderCommandTable renders lookup results as a borderless table.
func renderCommandTable(results []discovery.LookupResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		source := r.Path
		if r.Source == discovery.SourceFallback {
			source += " (default)"
		}
		rows = append(rows, []string{CmdStyle.Render(r.Name.String()), describeCommand(r.Command), source})
	}

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("NAME", "COMMAND", "DEFINED IN").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Render()
}

// describeCommand renders a record as a single shell-quoted line. Shell-text
// records are shown verbatim; a working directory is appended in brackets.
func describeCommand(c uribofile.Command) string {
	if c.Kind == uribofile.KindShell {
		return c.Script
	}

	words := make([]string, 0, len(c.Args)+1)
	for _, w := range append([]string{c.Program}, c.Args...) {
		words = append(words, quoteWord(w))
	}
	line := strings.Join(words, " ")
	if c.WorkDir.IsSet() {
		line += " [in " + c.WorkDir.String() + "]"
	}
	return line
}

// quoteWord quotes w for a POSIX shell, falling back to %q for strings the
// shell cannot represent.
func quoteWord(w string) string {
	quoted, err := syntax.Quote(w, syntax.LangPOSIX)
	if err != nil {
		return fmt.Sprintf("%q", w)
	}
	return quoted
}
