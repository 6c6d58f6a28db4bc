// SPDX-License-Identifier: MPL-2.0

// Package uribofile provides the data model and storage for .uribo command files.
//
// A .uribo file maps command names to command records. A record is either a
// structured executable invocation (command, fixed args, optional working
// directory) or, for files written by older releases, a bare string of shell
// text. Both shapes decode into the single Command type; Kind tells them apart.
//
// Store reads and writes files through an afero.Fs so that callers can run
// against the OS filesystem or an in-memory one.
package uribofile
