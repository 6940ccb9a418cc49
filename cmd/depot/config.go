// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"depot-cli/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage depot configuration",
	Long: `Manage depot configuration.

Configuration is stored in:
  - Linux: ~/.config/depot/config.cue
  - macOS: ~/Library/Application Support/depot/config.cue
  - Windows: %APPDATA%\depot\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	keyStyle := ModuleStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if path := config.ResolvedPath(); path != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	stagingDir, err := config.ResolveStagingDir(cfg)
	if err != nil {
		stagingDir = SubtitleStyle.Render("(unresolvable)")
	}

	fmt.Printf("%s: %s\n", keyStyle.Render("installer_command"), valueStyle.Render(cfg.InstallerCommand))
	fmt.Printf("%s: %s\n", keyStyle.Render("staging_dir"), valueStyle.Render(stagingDir))
	fmt.Printf("%s: %s\n", keyStyle.Render("manifest_path"), valueStyle.Render(cfg.ManifestPath))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig() error {
	path, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	stagingDir, err := config.ResolveStagingDir(nil)
	if err == nil {
		fmt.Printf("Default staging directory: %s\n", stagingDir)
	} else {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+"could not resolve staging directory")
	}

	return nil
}
