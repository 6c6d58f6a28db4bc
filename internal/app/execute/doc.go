// SPDX-License-Identifier: MPL-2.0

// Package execute provides shell selection and execution context
// construction for the uribo run pipeline. It decouples CLI-layer
// orchestration from the runtime package.
package execute
