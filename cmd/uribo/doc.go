// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for uribo.
//
// The command tree is built per invocation by newRootCommand so tests can run
// it in-process against their own streams, working directory and
// configuration. Execute is the entry point used by main.
package cmd
