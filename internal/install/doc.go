// SPDX-License-Identifier: MPL-2.0

// Package install wraps a fetcher with the per-module bounded-retry policy:
// up to three total attempts, full re-fetch each time, no backoff. Every
// fetch error is treated as transient; classification failures are rejected
// before this package is ever invoked. Errors never escape the Install
// boundary — they are converted into a terminal Outcome.
package install
