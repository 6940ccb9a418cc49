// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type (
	// StagingStore is the staging-directory capability: it persists a
	// downloaded artifact stream under a basename and returns the local
	// path the package manager should install from.
	StagingStore interface {
		Stage(name string, r io.Reader) (string, error)
	}

	// DirStore stages artifacts as files in a single directory. The
	// directory is created on first use; concurrent Stage calls may race on
	// creation, which MkdirAll tolerates.
	DirStore struct {
		Dir string
	}
)

// NewDirStore creates a DirStore rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{Dir: dir}
}

// Stage streams r into <dir>/<name> and returns the file path. A partially
// written file is removed on stream failure so retries start from scratch.
func (s *DirStore) Stage(name string, r io.Reader) (_ string, err error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating staging directory %s: %w", s.Dir, err)
	}

	dest := filepath.Join(s.Dir, name)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating staged file %s: %w", dest, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			// Best-effort removal of the partially written artifact.
			_ = os.Remove(dest)
		}
	}()

	if _, err = io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing staged file %s: %w", dest, err)
	}

	return dest, nil
}
