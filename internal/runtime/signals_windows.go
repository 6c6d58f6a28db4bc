// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runtime

import "os"

// interruptSignals are the console signals a foreground child also receives.
var interruptSignals = []os.Signal{os.Interrupt}
