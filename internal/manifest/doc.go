// SPDX-License-Identifier: MPL-2.0

// Package manifest loads and validates the depot.json manifest: a JSON
// document whose top-level customDeps section declares the module mapping
// (name -> source specifier) and the optional performance flag selecting
// concurrent batch execution.
//
// The document is validated against an embedded CUE schema before decoding,
// so shape errors (non-string specifiers, wrong nesting) surface with
// schema-level diagnostics instead of decode panics. Missing file, missing
// customDeps section, and missing module mapping are configuration errors:
// they abort the run before any installation starts.
package manifest
