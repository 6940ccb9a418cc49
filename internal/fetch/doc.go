// SPDX-License-Identifier: MPL-2.0

// Package fetch performs the side-effecting installation action for a single
// classified source descriptor: registry and VCS references are handed
// straight to the external package-manager command, direct URLs are first
// streamed into the staging directory and the staged file is installed.
//
// External collaborators are injected capabilities (ProcessRunner,
// StagingStore, HTTP Doer) so the orchestration layers can be tested with
// in-memory fakes instead of real processes and network.
package fetch
