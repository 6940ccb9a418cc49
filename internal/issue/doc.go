// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error reporting: ActionableError carries
// operation/resource context and fix suggestions for configuration failures,
// and a small catalog of known issues renders markdown guidance cards for
// the situations users hit most (missing manifest, missing package manager).
package issue
