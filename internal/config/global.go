// SPDX-License-Identifier: MPL-2.0

package config

var (
	// configDirOverride allows tests to override the config directory.
	// Necessary because os.UserHomeDir() doesn't reliably respect the HOME
	// environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string

	// configFilePathOverride holds the --config flag value; when set it is
	// used exclusively and must point at an existing file.
	configFilePathOverride string

	// resolvedPath records the config file used by the last Load.
	resolvedPath string
)

// Reset clears overrides and cached state. Call from test cleanup.
func Reset() {
	configDirOverride = ""
	configFilePathOverride = ""
	resolvedPath = ""
}

// SetConfigDirOverride sets a custom config directory path, primarily for
// tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFilePathOverride sets an explicit config file path (--config).
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}
