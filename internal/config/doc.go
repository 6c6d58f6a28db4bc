// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/uribo/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/uribo/config.cue on macOS, %APPDATA%\uribo\config.cue
// on Windows). URIBO_* environment variables override file values, and file values
// override the defaults.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
