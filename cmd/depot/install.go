// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"depot-cli/internal/batch"
	"depot-cli/internal/config"
	"depot-cli/internal/fetch"
	"depot-cli/internal/install"
	"depot-cli/internal/issue"
	"depot-cli/internal/manifest"
	"depot-cli/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// manifestFile allows specifying a custom manifest path (--manifest).
var manifestFile string

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install every module listed in the manifest",
	Long: `Install every module listed in the manifest.

Each module's source specifier is classified as a registry reference
(npm:), a version-control reference (git:, github:), or a direct URL
(https://). Registry and version-control sources are passed straight to
the package manager; direct URLs are downloaded to the staging directory
first. Failed installs are retried up to ` + fmt.Sprint(install.MaxAttempts) + ` times.

With "performance": true in the manifest, modules install concurrently
and every module runs to completion. Without it, modules install one at
a time and the batch stops at the first failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd)
	},
}

func init() {
	installCmd.Flags().StringVarP(&manifestFile, "manifest", "m", "", "manifest file (default is depot.json)")
	validateCmd.Flags().StringVarP(&manifestFile, "manifest", "m", "", "manifest file (default is depot.json)")
}

func runInstall(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return &ExitError{Code: types.ExitConfigError, Err: err}
	}

	m, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	runner, err := fetch.NewExecRunner(cfg.InstallerCommand)
	if err != nil {
		return &ExitError{
			Code: types.ExitConfigError,
			Err: issue.NewContext().
				WithOperation("prepare installer command").
				WithResource(cfg.InstallerCommand).
				WithSuggestion("Set a valid installer_command in your config file").
				Wrap(err).
				BuildError(),
		}
	}
	if !runner.Available() {
		renderIssue(issue.PackageManagerNotFoundId)
		return &ExitError{
			Code: types.ExitConfigError,
			Err:  fmt.Errorf("installer command %q not found on PATH", cfg.InstallerCommand),
		}
	}

	stagingDir, err := config.ResolveStagingDir(cfg)
	if err != nil {
		return &ExitError{Code: types.ExitConfigError, Err: err}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "depot",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	fetcher := fetch.NewFetcher(runner, fetch.NewDirStore(stagingDir), nil)
	installer := install.NewInstaller(fetcher, logger)
	orchestrator := batch.NewOrchestrator(installer, logger)

	result := orchestrator.Run(cmd.Context(), m)
	printOutcomes(result)

	receiptPath := filepath.Join(stagingDir, batch.ReceiptFileName)
	if err := batch.WriteReceipt(receiptPath, result); err != nil {
		logger.Warn("failed to write install receipt", "path", receiptPath, "err", err)
	}

	if result.Failed() {
		return &ExitError{
			Code: types.ExitBatchFailed,
			Err:  errors.New("at least one module failed to install"),
		}
	}
	return nil
}

// loadManifest resolves the manifest path (flag over config) and loads it.
// Any validation failure is fatal before a single install starts.
func loadManifest(cfg *config.Config) (*manifest.Manifest, error) {
	path := manifestFile
	if path == "" {
		path = cfg.ManifestPath
	}
	if path == "" {
		path = manifest.DefaultFileName
	}

	m, err := manifest.Load(path)
	if err != nil {
		if errors.Is(err, manifest.ErrManifestNotFound) {
			renderIssue(issue.ManifestNotFoundId)
		}
		return nil, &ExitError{Code: types.ExitConfigError, Err: err}
	}
	return m, nil
}

// printOutcomes writes one line per module outcome plus a summary.
func printOutcomes(result batch.Result) {
	for _, outcome := range result.Outcomes {
		name := ModuleStyle.Render(string(outcome.Module))
		if outcome.Succeeded() {
			fmt.Printf("%s %s %s\n",
				SuccessStyle.Render("✓"), name,
				SubtitleStyle.Render(attemptsNote(outcome.Attempts)))
			continue
		}
		fmt.Printf("%s %s %s\n",
			ErrorStyle.Render("✗"), name,
			SubtitleStyle.Render(attemptsNote(outcome.Attempts)))
		if outcome.Reason != "" {
			fmt.Printf("  %s\n", VerboseStyle.Render(outcome.Reason))
		}
	}

	fmt.Println()
	if result.Failed() {
		fmt.Println(ErrorStyle.Render("At least one module failed to install."))
	} else {
		fmt.Println(SuccessStyle.Render("All modules installed successfully."))
	}
}

func attemptsNote(attempts int) string {
	if attempts == 1 {
		return "(1 attempt)"
	}
	return fmt.Sprintf("(%d attempts)", attempts)
}

// renderIssue prints a styled issue card to stderr, falling back to nothing
// when rendering fails.
func renderIssue(id issue.Id) {
	entry := issue.Lookup(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}
