// SPDX-License-Identifier: MPL-2.0

// Package config loads the depot tool configuration: the installer command,
// the staging directory, the default manifest path, and UI preferences.
//
// Configuration lives in config.cue in the platform config directory and is
// validated against an embedded CUE schema before being merged into Viper
// over the built-in defaults. A missing config file is not an error; the
// defaults apply.
package config
