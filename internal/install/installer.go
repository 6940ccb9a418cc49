// SPDX-License-Identifier: MPL-2.0

package install

import (
	"context"

	"depot-cli/internal/source"
	"depot-cli/pkg/types"

	"github.com/charmbracelet/log"
)

// MaxAttempts is the fixed total attempt cap per module. The cap is a
// contract, not configuration: callers and tests rely on exactly three
// attempts before a module is declared Failed.
const MaxAttempts = 3

type (
	// Status is a module's terminal installation status.
	Status string

	// Outcome is the per-module result produced by Install. It is never
	// mutated after creation.
	Outcome struct {
		Module   types.ModuleName
		Status   Status
		Reason   string // failure diagnostic, empty on success
		Attempts int    // fetch attempts made (0 for classification failures)
	}

	// Fetcher performs one full installation attempt for a descriptor.
	Fetcher interface {
		Fetch(ctx context.Context, desc source.Descriptor) error
	}

	// Installer drives the retry policy over a Fetcher.
	Installer struct {
		fetcher Fetcher
		logger  *log.Logger
	}
)

const (
	// StatusSuccess means an attempt completed without error.
	StatusSuccess Status = "success"
	// StatusFailed means every attempt failed, or classification rejected
	// the module's specifier before any attempt was made.
	StatusFailed Status = "failed"
)

// Succeeded reports whether the outcome is terminal success.
func (o Outcome) Succeeded() bool { return o.Status == StatusSuccess }

// Rejected builds the Failed outcome for a module whose specifier never
// passed classification. No fetch attempt is made for such modules.
func Rejected(module types.ModuleName, reason string) Outcome {
	return Outcome{Module: module, Status: StatusFailed, Reason: reason, Attempts: 0}
}

// NewInstaller creates an Installer over fetcher. A nil logger falls back
// to the package-level default logger.
func NewInstaller(fetcher Fetcher, logger *log.Logger) *Installer {
	if logger == nil {
		logger = log.Default()
	}
	return &Installer{fetcher: fetcher, logger: logger}
}

// Install attempts the module's installation up to MaxAttempts times and
// converts the result into a terminal Outcome. Any fetch error triggers a
// full re-fetch; the first success stops the loop. Errors never propagate
// past this boundary.
func (i *Installer) Install(ctx context.Context, module types.ModuleName, desc source.Descriptor) Outcome {
	attempts, err := Retry(ctx, MaxAttempts, func(attempt int) error {
		fetchErr := i.fetcher.Fetch(ctx, desc)
		if fetchErr != nil {
			i.logger.Warn("install attempt failed",
				"module", module,
				"attempt", attempt+1,
				"max", MaxAttempts,
				"err", fetchErr)
		}
		return fetchErr
	})

	if err != nil {
		return Outcome{Module: module, Status: StatusFailed, Reason: err.Error(), Attempts: attempts}
	}

	i.logger.Info("module installed", "module", module, "attempts", attempts)
	return Outcome{Module: module, Status: StatusSuccess, Attempts: attempts}
}
