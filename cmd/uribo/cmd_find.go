// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/uribo/uribo/internal/discovery"
	"github.com/uribo/uribo/pkg/types"
	"github.com/uribo/uribo/pkg/uribofile"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

var findFormats = []string{formatJSON, formatYAML, formatTOML}

type (
	// findOutput is the structured result printed by `uribo find`.
	findOutput struct {
		Name    string        `json:"name" yaml:"name" toml:"name"`
		Path    string        `json:"path" yaml:"path" toml:"path"`
		Dir     string        `json:"dir" yaml:"dir" toml:"dir"`
		Source  string        `json:"source" yaml:"source" toml:"source"`
		Command commandOutput `json:"command" yaml:"command" toml:"command"`
	}

	commandOutput struct {
		Kind       string   `json:"kind" yaml:"kind" toml:"kind"`
		Command    string   `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
		Args       []string `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
		WorkingDir string   `json:"working_dir,omitempty" yaml:"working_dir,omitempty" toml:"working_dir,omitempty"`
		Script     string   `json:"script,omitempty" yaml:"script,omitempty" toml:"script,omitempty"`
	}
)

// newFindCommand creates the `uribo find` command.
func newFindCommand(app *App) *cobra.Command {
	var format string

	findCmd := &cobra.Command{
		Use:   "find <name>",
		Short: "Show which .uribo file defines a command",
		Long: `Show which .uribo file defines a command, without running it.

The result is printed as JSON (default), YAML or TOML.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCommandNames(app, false),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.newService(cmd.Context(), "")
			if err != nil {
				return classifyError(err, types.ExitFailure)
			}
			lookup, err := svc.Find(cmd.Context(), uribofile.CommandName(args[0]))
			if err != nil {
				return classifyError(err, types.ExitFailure)
			}
			return writeFindOutput(app.stdout, newFindOutput(lookup), format)
		},
	}

	findCmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format (json, yaml, toml)")
	_ = findCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(findFormats, cobra.ShellCompDirectiveNoFileComp))

	return findCmd
}

func newFindOutput(lookup discovery.LookupResult) findOutput {
	c := lookup.Command
	return findOutput{
		Name:   lookup.Name.String(),
		Path:   lookup.Path,
		Dir:    lookup.Dir,
		Source: lookup.Source.String(),
		Command: commandOutput{
			Kind:       c.Kind.String(),
			Command:    c.Program,
			Args:       c.Args,
			WorkingDir: c.WorkDir.String(),
			Script:     c.Script,
		},
	}
}

func writeFindOutput(w io.Writer, out findOutput, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case formatTOML:
		return toml.NewEncoder(w).Encode(out)
	default:
		return fmt.Errorf("unsupported format %q (expected one of json, yaml, toml)", format)
	}
}
