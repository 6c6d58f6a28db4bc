// SPDX-License-Identifier: MPL-2.0

// Package discovery resolves command names to the .uribo file that defines them.
//
// Resolution walks from a start directory up to the filesystem root and stops at
// the first .uribo file that defines the requested name. When no ancestor
// defines it, a single process-wide fallback file is consulted.
//
// File organization:
//   - discovery.go: Resolver construction, options and error types
//   - discovery_files.go: ancestor chain and per-directory probing
//   - discovery_commands.go: Resolve and List
package discovery
