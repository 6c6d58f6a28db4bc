// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/uribo/uribo/internal/app/alias"
	"github.com/uribo/uribo/internal/discovery"
	"github.com/uribo/uribo/internal/issue"
	"github.com/uribo/uribo/internal/runtime"
	"github.com/uribo/uribo/pkg/types"
	"github.com/uribo/uribo/pkg/uribofile"
)

// errorTemplate holds the user-facing context attached to a catalogued failure.
type errorTemplate struct {
	operation   string
	suggestions []string
}

var errorTemplates = map[issue.Id]errorTemplate{
	issue.CommandNotDefinedId: {
		operation: "resolve command",
		suggestions: []string{
			"Run 'uribo list' to see the commands visible from here",
			"Define it with 'uribo put <name> <command> [args...]'",
		},
	},
	issue.UribofileNotFoundId: {
		operation: "edit .uribo",
		suggestions: []string{
			"Run the command from the directory that holds the .uribo file",
			"Run 'uribo find <name>' to see which file defines a name",
		},
	},
	issue.NameNotDefinedId: {
		operation: "delete command",
		suggestions: []string{
			"Only names defined in ./.uribo can be deleted",
			"Run 'uribo find <name>' to see which file defines a name",
		},
	},
	issue.UribofileParseErrorId: {
		operation: "read .uribo",
		suggestions: []string{
			"Check that the file is a JSON object mapping names to commands",
		},
	},
	issue.ShellArgsUnsupportedId: {
		operation: "run command",
		suggestions: []string{
			"Redefine it with 'uribo put <name> <command> [args...]' to accept extra arguments",
		},
	},
	issue.PermissionDeniedId: {
		operation: "access file",
		suggestions: []string{
			"Check the file and directory permissions",
		},
	},
	issue.LaunchFailedId: {
		operation: "run command",
		suggestions: []string{
			"Check that the program is installed and on PATH",
			"Check that the working directory exists",
		},
	},
}

// classifyError wraps a service failure in an ActionableError linked to its
// issue catalog entry, and in an ExitError so the process exits with code.
func classifyError(err error, code types.ExitCode) error {
	if err == nil {
		return nil
	}
	if code.IsSuccess() {
		code = types.ExitFailure
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		if id := issueFor(err); id != 0 {
			tmpl := errorTemplates[id]
			err = issue.NewErrorContext().
				WithOperation(tmpl.operation).
				WithResource(resourceFor(err)).
				WithSuggestions(tmpl.suggestions...).
				WithIssue(id).
				Wrap(err).
				BuildError()
		}
	}
	return &ExitError{Code: code, Err: err}
}

func issueFor(err error) issue.Id {
	var ae *issue.ActionableError
	switch {
	case errors.Is(err, discovery.ErrCommandNotFound):
		return issue.CommandNotDefinedId
	case errors.Is(err, alias.ErrNoConfigFile):
		return issue.UribofileNotFoundId
	case errors.Is(err, uribofile.ErrNameNotDefined):
		return issue.NameNotDefinedId
	case errors.Is(err, uribofile.ErrParse):
		return issue.UribofileParseErrorId
	case errors.Is(err, runtime.ErrArgsUnsupported):
		return issue.ShellArgsUnsupportedId
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, runtime.ErrLaunchFailed):
		return issue.LaunchFailedId
	case errors.As(err, &ae) && ae.Issue != 0:
		return ae.Issue
	default:
		return 0
	}
}

// resourceFor names the file behind err when its message does not already.
func resourceFor(err error) string {
	var noFile *alias.NoConfigFileError
	if errors.As(err, &noFile) {
		return uribofile.PathIn(noFile.Dir)
	}
	return ""
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	if !verboseMode {
		return err.Error()
	}

	msg := err.Error()
	for i, cause := range issue.Chain(err) {
		if i == 0 {
			msg += "\n\nError chain:"
		}
		msg += fmt.Sprintf("\n  %d. %s", i+1, cause.Error())
	}
	return msg
}

// renderError writes err to w. Exit codes forwarded from an executed command
// print nothing; in verbose mode the matching issue page follows the message.
func renderError(w io.Writer, err error, verbose bool, stylePath string) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	display := unwrapDisplay(err)
	if display == nil {
		display = err
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(display, verbose))

	if !verbose {
		return
	}
	id := issueFor(err)
	if id == 0 {
		return
	}
	if entry := issue.Get(id); entry != nil {
		rendered, renderErr := entry.Render(stylePath)
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", id, "error", renderErr)
			return
		}
		_, _ = fmt.Fprint(w, rendered)
	}
}

// unwrapDisplay strips the exit-code wrapper so the error chain starts at
// the service error.
func unwrapDisplay(err error) error {
	for {
		e, ok := err.(*ExitError)
		if !ok {
			return err
		}
		err = e.Err
	}
}
