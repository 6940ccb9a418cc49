// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"depot-cli/internal/issue"
	"depot-cli/pkg/types"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	t.Run("message from wrapped error", func(t *testing.T) {
		t.Parallel()

		inner := errors.New("boom")
		err := &ExitError{Code: types.ExitBatchFailed, Err: inner}
		if err.Error() != "boom" {
			t.Errorf("Error() = %q, want %q", err.Error(), "boom")
		}
		if !errors.Is(err, inner) {
			t.Error("errors.Is should reach the wrapped error")
		}
	})

	t.Run("message without wrapped error", func(t *testing.T) {
		t.Parallel()

		err := &ExitError{Code: types.ExitConfigError}
		if err.Error() != "exit status 2" {
			t.Errorf("Error() = %q, want %q", err.Error(), "exit status 2")
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()

		got := formatErrorForDisplay(errors.New("plain"), false)
		if got != "plain" {
			t.Errorf("formatErrorForDisplay() = %q, want %q", got, "plain")
		}
	})

	t.Run("actionable error uses Format", func(t *testing.T) {
		t.Parallel()

		err := issue.NewContext().
			WithOperation("load manifest").
			WithSuggestion("Create a depot.json").
			Wrap(errors.New("missing")).
			BuildError()

		got := formatErrorForDisplay(err, false)
		plain := err.Error()
		if got == plain {
			t.Error("expected formatted output to differ from plain Error()")
		}
	})
}
