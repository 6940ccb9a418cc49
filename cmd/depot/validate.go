// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"depot-cli/internal/config"
	"depot-cli/internal/source"
	"depot-cli/pkg/types"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the manifest without installing anything",
	Long: `Validate the manifest without installing anything.

Loads the manifest, checks its structure, and classifies every module's
source specifier. Exits non-zero when the manifest is malformed or any
specifier is unrecognized. No package manager command is run and no
artifact is downloaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func runValidate() error {
	cfg, err := config.Load()
	if err != nil {
		return &ExitError{Code: types.ExitConfigError, Err: err}
	}

	m, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	mode := "sequential"
	if m.Performance {
		mode = "concurrent"
	}
	fmt.Printf("%s %s (%s mode, %d modules)\n\n",
		TitleStyle.Render("Manifest:"), m.FilePath, mode, len(m.Modules))

	bad := 0
	for _, name := range m.SortedNames() {
		specifier := m.Modules[name]
		desc, err := source.Classify(specifier)
		if err != nil {
			bad++
			fmt.Printf("%s %s: %s\n",
				ErrorStyle.Render("✗"), ModuleStyle.Render(string(name)),
				VerboseStyle.Render(err.Error()))
			continue
		}
		fmt.Printf("%s %s: %s %s\n",
			SuccessStyle.Render("✓"), ModuleStyle.Render(string(name)),
			string(desc.Kind), SubtitleStyle.Render(desc.Value))
	}

	fmt.Println()
	if bad > 0 {
		fmt.Println(ErrorStyle.Render(fmt.Sprintf("%d module(s) have unrecognized sources.", bad)))
		return &ExitError{
			Code: types.ExitConfigError,
			Err:  fmt.Errorf("%d unrecognized source specifier(s)", bad),
		}
	}
	fmt.Println(SuccessStyle.Render("Manifest is valid."))
	return nil
}
