// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"context"

	"depot-cli/internal/install"
	"depot-cli/internal/manifest"
	"depot-cli/internal/source"
	"depot-cli/pkg/types"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

type (
	// Status is the aggregate status of one batch run.
	Status string

	// Result aggregates every terminal module outcome of a run.
	// Invariant: Status is AllSucceeded iff every outcome succeeded.
	Result struct {
		Outcomes []install.Outcome
		Status   Status
	}

	// ModuleInstaller produces a terminal outcome for one module. It never
	// returns an error: failures are encoded in the outcome.
	ModuleInstaller interface {
		Install(ctx context.Context, module types.ModuleName, desc source.Descriptor) install.Outcome
	}

	// Strategy is one batch execution discipline over the module mapping.
	Strategy interface {
		Name() string
		Run(ctx context.Context, m *manifest.Manifest, installer ModuleInstaller) Result
	}

	// ConcurrentStrategy starts every module install without waiting and
	// collects all terminal outcomes. A failing module never cancels its
	// siblings.
	ConcurrentStrategy struct{}

	// SequentialStrategy installs one module at a time in sorted name
	// order, short-circuiting at the first terminal failure.
	SequentialStrategy struct{}

	// Orchestrator selects a strategy from the manifest's performance flag
	// and runs the batch through it.
	Orchestrator struct {
		installer ModuleInstaller
		logger    *log.Logger
	}
)

const (
	// AllSucceeded means every module reached a Success outcome.
	AllSucceeded Status = "all-succeeded"
	// AtLeastOneFailed means some module reached a Failed outcome (or, in
	// sequential mode, processing stopped at one).
	AtLeastOneFailed Status = "at-least-one-failed"
)

// Failed reports whether the run ended with at least one failed module.
func (r Result) Failed() bool { return r.Status == AtLeastOneFailed }

// NewOrchestrator creates an Orchestrator over installer. A nil logger
// falls back to the package-level default logger.
func NewOrchestrator(installer ModuleInstaller, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{installer: installer, logger: logger}
}

// Run executes the whole batch under the strategy selected by
// m.Performance and returns the aggregated result.
func (o *Orchestrator) Run(ctx context.Context, m *manifest.Manifest) Result {
	strategy := StrategyFor(m.Performance)
	o.logger.Debug("starting batch", "strategy", strategy.Name(), "modules", len(m.Modules))
	result := strategy.Run(ctx, m, o.installer)
	for _, outcome := range result.Outcomes {
		if outcome.Succeeded() {
			o.logger.Debug("module outcome", "module", outcome.Module, "attempts", outcome.Attempts)
		} else {
			o.logger.Error("module failed", "module", outcome.Module, "attempts", outcome.Attempts, "reason", outcome.Reason)
		}
	}
	return result
}

// StrategyFor maps the manifest's performance flag to a strategy:
// true selects concurrent execution, false sequential.
func StrategyFor(performance bool) Strategy {
	if performance {
		return &ConcurrentStrategy{}
	}
	return &SequentialStrategy{}
}

// Name returns the strategy name used in logs.
func (*ConcurrentStrategy) Name() string { return "concurrent" }

// Run starts every module without waiting and blocks until all of them
// reach a terminal outcome. The outcome set always has exactly one entry
// per manifest module.
func (*ConcurrentStrategy) Run(ctx context.Context, m *manifest.Manifest, installer ModuleInstaller) Result {
	names := m.SortedNames()
	outcomes := make([]install.Outcome, len(names))

	// Goroutines write disjoint slots, so no lock is needed. The group is
	// used purely as a completion barrier: installs never return errors,
	// and sibling cancellation is explicitly not wanted here.
	var eg errgroup.Group
	for idx, name := range names {
		eg.Go(func() error {
			outcomes[idx] = installOne(ctx, installer, name, m.Modules[name])
			return nil
		})
	}
	_ = eg.Wait()

	return aggregate(outcomes)
}

// Name returns the strategy name used in logs.
func (*SequentialStrategy) Name() string { return "sequential" }

// Run installs modules strictly one at a time. The first terminal failure
// stops the loop: later modules are never attempted and contribute no
// outcome.
func (*SequentialStrategy) Run(ctx context.Context, m *manifest.Manifest, installer ModuleInstaller) Result {
	var outcomes []install.Outcome
	for _, name := range m.SortedNames() {
		outcome := installOne(ctx, installer, name, m.Modules[name])
		outcomes = append(outcomes, outcome)
		if !outcome.Succeeded() {
			break
		}
	}
	return aggregate(outcomes)
}

// installOne classifies one module's specifier and, when classification
// succeeds, drives the retrying installer. Classification failures are
// permanent: they become a Failed outcome with zero attempts and the
// installer is never invoked.
func installOne(ctx context.Context, installer ModuleInstaller, name types.ModuleName, specifier string) install.Outcome {
	desc, err := source.Classify(specifier)
	if err != nil {
		return install.Rejected(name, err.Error())
	}
	return installer.Install(ctx, name, desc)
}

// aggregate computes the overall status from the outcome set.
func aggregate(outcomes []install.Outcome) Result {
	status := AllSucceeded
	for _, o := range outcomes {
		if !o.Succeeded() {
			status = AtLeastOneFailed
			break
		}
	}
	return Result{Outcomes: outcomes, Status: status}
}
