// SPDX-License-Identifier: MPL-2.0

// Package source classifies manifest source specifiers into typed
// descriptors. Classification is pure: the descriptor variant depends only
// on the specifier's scheme prefix, never on the environment.
//
// Three kinds are recognized:
//
//   - "npm:<spec>"        registry reference, installed by specifier
//   - "git:", "github:"   version-control remote, rewritten to https://
//   - "https://<url>"     direct download, staged locally before install
//
// Any other shape is a manifest-authoring error and is never retried.
package source
