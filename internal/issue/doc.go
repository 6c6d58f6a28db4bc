// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions; it can link to a catalogued Issue whose Markdown help page is
// rendered with glamour when uribo runs in verbose mode.
package issue
