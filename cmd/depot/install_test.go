// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"depot-cli/internal/config"
	"depot-cli/internal/manifest"
	"depot-cli/pkg/types"
)

const minimalManifest = `{
  "customDeps": {
    "module": { "left-pad": "npm:left-pad" },
    "performance": false
  }
}`

func TestLoadManifest(t *testing.T) {
	// Not parallel: mutates the package-level manifestFile flag var.

	t.Run("flag takes precedence over config", func(t *testing.T) {
		dir := t.TempDir()
		flagPath := filepath.Join(dir, "from-flag.json")
		if err := os.WriteFile(flagPath, []byte(minimalManifest), 0o644); err != nil {
			t.Fatal(err)
		}

		origManifestFile := manifestFile
		t.Cleanup(func() { manifestFile = origManifestFile })
		manifestFile = flagPath

		cfg := config.DefaultConfig()
		cfg.ManifestPath = filepath.Join(dir, "does-not-exist.json")

		m, err := loadManifest(cfg)
		if err != nil {
			t.Fatalf("loadManifest() error = %v", err)
		}
		if m.FilePath != flagPath {
			t.Errorf("FilePath = %q, want %q", m.FilePath, flagPath)
		}
	})

	t.Run("falls back to config manifest path", func(t *testing.T) {
		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "from-config.json")
		if err := os.WriteFile(cfgPath, []byte(minimalManifest), 0o644); err != nil {
			t.Fatal(err)
		}

		origManifestFile := manifestFile
		t.Cleanup(func() { manifestFile = origManifestFile })
		manifestFile = ""

		cfg := config.DefaultConfig()
		cfg.ManifestPath = cfgPath

		m, err := loadManifest(cfg)
		if err != nil {
			t.Fatalf("loadManifest() error = %v", err)
		}
		if len(m.Modules) != 1 {
			t.Errorf("len(Modules) = %d, want 1", len(m.Modules))
		}
	})

	t.Run("missing manifest is a config error", func(t *testing.T) {
		origManifestFile := manifestFile
		t.Cleanup(func() { manifestFile = origManifestFile })
		manifestFile = filepath.Join(t.TempDir(), "absent.json")

		_, err := loadManifest(config.DefaultConfig())
		if err == nil {
			t.Fatal("loadManifest() error = nil, want error")
		}

		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("error = %T, want *ExitError", err)
		}
		if exitErr.Code != types.ExitConfigError {
			t.Errorf("Code = %d, want %d", exitErr.Code, types.ExitConfigError)
		}
		if !errors.Is(err, manifest.ErrManifestNotFound) {
			t.Error("errors.Is(err, manifest.ErrManifestNotFound) = false, want true")
		}
	})
}

func TestAttemptsNote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attempts int
		want     string
	}{
		{1, "(1 attempt)"},
		{2, "(2 attempts)"},
		{3, "(3 attempts)"},
		{0, "(0 attempts)"},
	}

	for _, tt := range tests {
		if got := attemptsNote(tt.attempts); got != tt.want {
			t.Errorf("attemptsNote(%d) = %q, want %q", tt.attempts, got, tt.want)
		}
	}
}
