// SPDX-License-Identifier: MPL-2.0

// Package runtime launches resolved uribo commands.
//
// Two runtime implementations are available:
//   - native: structured records are launched directly from their argv; shell-text
//     records are handed to `<shell> -c <text>`
//   - virtual: shell-text records are interpreted in-process by mvdan/sh
//
// Both implement the Runtime interface. A Registry picks the runtime for an
// ExecutionContext: the virtual runtime is only used for shell-text records whose
// shell is VirtualShell.
//
// Execution is synchronous and has no timeout. While the child runs, interrupt
// signals delivered to uribo are absorbed so the child alone reacts to them. A
// child that ends without an exit status (killed by a signal) yields
// types.ExitNoStatus.
package runtime
