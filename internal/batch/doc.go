// SPDX-License-Identifier: MPL-2.0

// Package batch drives the retrying installer over every module in the
// manifest and aggregates the per-module outcomes into one result.
//
// Two named strategies sit behind the Strategy interface, selected by the
// manifest's performance flag. Concurrent mode starts every module without
// waiting and always runs each one to a terminal outcome, so diagnostics
// for all modules are available even when some fail. Sequential mode
// installs strictly one at a time in sorted name order and stops at the
// first terminal failure; modules never attempted are absent from the
// outcome set. The asymmetry is deliberate and contract-tested.
package batch
