// SPDX-License-Identifier: MPL-2.0

// Package alias implements the uribo operations on top of the .uribo store,
// the directory resolver and the runtimes.
//
// Run and Find resolve a name from the working directory upward and then the
// fallback file. Put and Delete only ever touch the .uribo file of the
// working directory itself.
package alias
