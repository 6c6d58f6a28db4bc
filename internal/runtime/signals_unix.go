// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runtime

import (
	"os"
	"syscall"
)

// interruptSignals are the terminal-generated signals a foreground child also receives.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGQUIT}
