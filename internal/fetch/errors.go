// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"errors"
	"fmt"

	"depot-cli/pkg/types"
)

// Sentinel errors wrapped by the typed fetch errors below. All three kinds
// are transient-assumed: the retrying installer re-fetches on any of them.
var (
	// ErrProcessExit is the sentinel for a non-zero package-manager exit.
	ErrProcessExit = errors.New("package manager failed")
	// ErrTransport is the sentinel for a network-transport failure.
	ErrTransport = errors.New("transport failure")
	// ErrStagingWrite is the sentinel for a staging filesystem write failure.
	ErrStagingWrite = errors.New("staging write failure")
)

type (
	// ProcessExitError reports a package-manager invocation that spawned but
	// exited non-zero, or failed to spawn at all. Diagnostic carries the
	// process's stderr when non-empty, else the generic process error text.
	ProcessExitError struct {
		Target     string         // specifier or staged file path passed to the installer
		ExitCode   types.ExitCode // exit status (1 when the process failed to spawn)
		Diagnostic string
	}

	// TransportError reports a failed streaming GET: either the request
	// itself errored or the server answered with a non-2xx status.
	TransportError struct {
		URL        string
		StatusCode int // 0 when the request never produced a response
		Err        error
	}

	// StagingWriteError reports a failure streaming the response body into
	// the staging directory. The package manager is never invoked when this
	// occurs.
	StagingWriteError struct {
		URL string
		Err error
	}
)

// Error implements the error interface for ProcessExitError.
func (e *ProcessExitError) Error() string {
	return fmt.Sprintf("package manager failed for %q (exit %s): %s", e.Target, e.ExitCode, e.Diagnostic)
}

// Unwrap returns ErrProcessExit for errors.Is() compatibility.
func (e *ProcessExitError) Unwrap() error { return ErrProcessExit }

// Error implements the error interface for TransportError.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport failure for %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transport failure for %s: %v", e.URL, e.Err)
}

// Unwrap returns ErrTransport for errors.Is() compatibility.
func (e *TransportError) Unwrap() error { return ErrTransport }

// Error implements the error interface for StagingWriteError.
func (e *StagingWriteError) Error() string {
	return fmt.Sprintf("staging write failure for %s: %v", e.URL, e.Err)
}

// Unwrap returns ErrStagingWrite for errors.Is() compatibility.
func (e *StagingWriteError) Unwrap() error { return ErrStagingWrite }
