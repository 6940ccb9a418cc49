// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Config is the resolved depot tool configuration.
	Config struct {
		// InstallerCommand is the external package-manager install command.
		// It is split with shell field rules; the install target is
		// appended as the final argument.
		InstallerCommand string `mapstructure:"installer_command"`

		// StagingDir holds downloaded artifacts before installation.
		// Empty means the per-user default (~/.depot/staging).
		StagingDir string `mapstructure:"staging_dir"`

		// ManifestPath is the manifest used when --manifest is not given.
		ManifestPath string `mapstructure:"manifest_path"`

		// UI holds presentation preferences.
		UI UIConfig `mapstructure:"ui"`
	}

	// UIConfig holds presentation preferences.
	UIConfig struct {
		// Verbose enables verbose diagnostic output.
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in defaults applied under any config file.
func DefaultConfig() *Config {
	return &Config{
		InstallerCommand: "npm install",
		StagingDir:       "",
		ManifestPath:     "depot.json",
		UI:               UIConfig{Verbose: false},
	}
}
