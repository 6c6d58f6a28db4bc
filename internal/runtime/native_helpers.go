// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"os/signal"
	"path/filepath"
	"slices"

	"github.com/uribo/uribo/pkg/uribofile"
)

// EffectiveWorkDir returns the directory the child should start in, or ""
// to inherit the caller's working directory. A relative working_dir is
// resolved against definingDir, the directory of the .uribo file that
// defined cmd; an absolute one is used as is.
func EffectiveWorkDir(cmd uribofile.Command, definingDir string) string {
	if cmd.Kind != uribofile.KindExec || !cmd.WorkDir.IsSet() {
		return ""
	}
	wd := string(cmd.WorkDir)
	if filepath.IsAbs(wd) {
		return filepath.Clean(wd)
	}
	return filepath.Join(definingDir, wd)
}

// Argv returns the child's argument vector for a structured record: the
// record's args followed by extra, in order.
func Argv(cmd uribofile.Command, extra []string) []string {
	return slices.Concat(cmd.Args, extra)
}

// absorbInterrupts captures the interrupt signals for the lifetime of a child
// so they do not terminate uribo. The returned function restores default
// handling.
func absorbInterrupts() (restore func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, interruptSignals...)
	return func() { signal.Stop(ch) }
}
