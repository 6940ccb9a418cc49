// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"depot-cli/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "depot"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the depot configuration directory using platform
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application
// Support, and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultStagingDir returns the per-user staging directory used when the
// config does not set one. The path is ~/.depot/staging on all platforms.
func DefaultStagingDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".depot", "staging"), nil
}

// ResolveStagingDir returns the staging directory for cfg, falling back to
// the per-user default when unset.
func ResolveStagingDir(cfg *Config) (string, error) {
	if cfg != nil && cfg.StagingDir != "" {
		return cfg.StagingDir, nil
	}
	return DefaultStagingDir()
}

// Load reads the configuration, merging the config file (if any) over the
// built-in defaults. The resolved file path is cached for Show-style
// commands; a missing file is not an error.
func Load() (*Config, error) {
	cfg, path, err := loadFrom(configFilePathOverride)
	if err != nil {
		return nil, err
	}
	resolvedPath = path
	return cfg, nil
}

// ResolvedPath returns the config file path used by the last Load, or ""
// when defaults applied.
func ResolvedPath() string { return resolvedPath }

// loadFrom performs the actual loading. When explicitPath is non-empty it
// is used exclusively and must exist; otherwise the platform config dir and
// then the current directory are probed, and absence falls back to defaults.
func loadFrom(explicitPath string) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("installer_command", defaults.InstallerCommand)
	v.SetDefault("staging_dir", defaults.StagingDir)
	v.SetDefault("manifest_path", defaults.ManifestPath)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	path := ""

	if explicitPath != "" {
		if !fileExists(explicitPath) {
			return nil, "", issue.NewContext().
				WithOperation("load configuration").
				WithResource(explicitPath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'depot config init' to create a default config").
				Wrap(fmt.Errorf("config file not found: %s", explicitPath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, explicitPath); err != nil {
			return nil, "", wrapConfigLoadError(explicitPath, err)
		}
		path = explicitPath
	} else {
		cfgDir, err := ConfigDir()
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		switch {
		case fileExists(cuePath):
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", wrapConfigLoadError(cuePath, err)
			}
			path = cuePath
		case fileExists(ConfigFileName + "." + ConfigFileExt):
			localPath := ConfigFileName + "." + ConfigFileExt
			if err := loadCUEIntoViper(v, localPath); err != nil {
				return nil, "", wrapConfigLoadError(localPath, err)
			}
			path = localPath
		}
		// If no config file found, use defaults (no error)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, path, nil
}

func wrapConfigLoadError(path string, err error) error {
	return issue.NewContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		Wrap(err).
		BuildError()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper. The decode target is a plain
// map (not a struct) so Viper keeps its defaults for absent fields.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("invalid CUE in %s: %w", path, userValue.Err())
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig creates a default config file if it doesn't exist and
// returns its path.
func CreateDefaultConfig() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil // File exists
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// depot configuration file.\n\n")
	sb.WriteString(fmt.Sprintf("installer_command: %q\n", cfg.InstallerCommand))
	if cfg.StagingDir != "" {
		sb.WriteString(fmt.Sprintf("staging_dir: %q\n", cfg.StagingDir))
	}
	sb.WriteString(fmt.Sprintf("manifest_path: %q\n", cfg.ManifestPath))
	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}
