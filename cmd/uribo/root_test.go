// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestRewriteArgs(t *testing.T) {
	t.Parallel()

	rootCmd := newRootCommand(NewApp(Dependencies{}))

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "no args", args: nil, want: nil},
		{name: "subcommand", args: []string{"put", "x", "ls"}, want: []string{"put", "x", "ls"}},
		{name: "subcommand alias", args: []string{"ls"}, want: []string{"ls"}},
		{name: "unknown name", args: []string{"build", "-race"}, want: []string{"run", "build", "-race"}},
		{name: "bool flag first", args: []string{"-v", "build"}, want: []string{"-v", "run", "build"}},
		{name: "value flag first", args: []string{"--config", "c.cue", "build"}, want: []string{"--config", "c.cue", "run", "build"}},
		{name: "value flag with equals", args: []string{"--config=c.cue", "build"}, want: []string{"--config=c.cue", "run", "build"}},
		{name: "only flags", args: []string{"--version"}, want: []string{"--version"}},
		{name: "help", args: []string{"help", "run"}, want: []string{"help", "run"}},
		{name: "completion request", args: []string{"__complete", "bu"}, want: []string{"__complete", "bu"}},
		{name: "double dash", args: []string{"--", "build"}, want: []string{"--", "build"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := append([]string(nil), tt.args...)
			got := rewriteArgs(rootCmd, in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("rewriteArgs(%q) mismatch (-want +got):\n%s", tt.args, diff)
			}
			if diff := cmp.Diff(tt.args, in); diff != "" {
				t.Errorf("rewriteArgs modified its input (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlagTakesValue(t *testing.T) {
	t.Parallel()

	flags := newRootCommand(NewApp(Dependencies{})).PersistentFlags()
	for arg, want := range map[string]bool{
		"--config":   true,
		"--config=x": false,
		"--verbose":  false,
		"-v":         false,
		"--unknown":  false,
		"-x":         false,
	} {
		if got := flagTakesValue(flags, arg); got != want {
			t.Errorf("flagTakesValue(%q) = %v, want %v", arg, got, want)
		}
	}
}
