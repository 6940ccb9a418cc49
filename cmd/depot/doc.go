// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for depot.
//
// This package implements the Cobra command hierarchy for the depot CLI:
// the root command, the install and validate commands, and configuration
// management.
package cmd
