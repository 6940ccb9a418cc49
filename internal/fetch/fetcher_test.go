// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"depot-cli/internal/source"
	"depot-cli/pkg/types"
)

// fakeRunner records install invocations and plays back scripted results.
type fakeRunner struct {
	targets []string
	results []*RunResult
}

func (f *fakeRunner) Install(_ context.Context, target string) *RunResult {
	f.targets = append(f.targets, target)
	if len(f.results) == 0 {
		return &RunResult{}
	}
	res := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return res
}

// fakeStore stages into memory, optionally failing.
type fakeStore struct {
	names  []string
	data   map[string]string
	failed error
}

func (f *fakeStore) Stage(name string, r io.Reader) (string, error) {
	if f.failed != nil {
		return "", f.failed
	}
	f.names = append(f.names, name)
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.data == nil {
		f.data = map[string]string{}
	}
	f.data[name] = string(b)
	return "/staged/" + name, nil
}

func TestFetch_RegistryInvokesInstaller(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	f := NewFetcher(runner, &fakeStore{}, nil)

	err := f.Fetch(context.Background(), source.Descriptor{Kind: source.KindRegistry, Value: "left-pad"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.targets) != 1 || runner.targets[0] != "left-pad" {
		t.Errorf("installer targets = %v", runner.targets)
	}
}

func TestFetch_VCSInvokesInstallerWithRewrittenURL(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	f := NewFetcher(runner, &fakeStore{}, nil)

	err := f.Fetch(context.Background(), source.Descriptor{Kind: source.KindVCS, Value: "https://acme/widgets"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.targets) != 1 || runner.targets[0] != "https://acme/widgets" {
		t.Errorf("installer targets = %v", runner.targets)
	}
}

func TestFetch_ProcessExitPrefersStderr(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{results: []*RunResult{{ExitCode: 1, Stderr: "  npm ERR! nope \n"}}}
	f := NewFetcher(runner, &fakeStore{}, nil)

	err := f.Fetch(context.Background(), source.Descriptor{Kind: source.KindRegistry, Value: "x"})
	var pe *ProcessExitError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProcessExitError, got %v", err)
	}
	if pe.Diagnostic != "npm ERR! nope" {
		t.Errorf("Diagnostic = %q", pe.Diagnostic)
	}
	if !errors.Is(err, ErrProcessExit) {
		t.Error("expected ErrProcessExit sentinel")
	}
}

func TestFetch_ProcessExitFallsBackToSpawnError(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{results: []*RunResult{{ExitCode: 1, Err: errors.New("exec: not found")}}}
	f := NewFetcher(runner, &fakeStore{}, nil)

	err := f.Fetch(context.Background(), source.Descriptor{Kind: source.KindRegistry, Value: "x"})
	var pe *ProcessExitError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProcessExitError, got %v", err)
	}
	if pe.Diagnostic != "exec: not found" {
		t.Errorf("Diagnostic = %q", pe.Diagnostic)
	}
}

func TestFetch_DirectURLStagesThenInstalls(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "tarball bytes")
	}))
	defer srv.Close()

	runner := &fakeRunner{}
	store := &fakeStore{}
	f := NewFetcher(runner, store, srv.Client())

	err := f.Fetch(context.Background(), source.Descriptor{Kind: source.KindDirectURL, Value: srv.URL + "/pkgs/x.tgz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.names) != 1 || store.names[0] != "x.tgz" {
		t.Errorf("staged names = %v", store.names)
	}
	if store.data["x.tgz"] != "tarball bytes" {
		t.Errorf("staged content = %q", store.data["x.tgz"])
	}
	if len(runner.targets) != 1 || runner.targets[0] != "/staged/x.tgz" {
		t.Errorf("installer targets = %v", runner.targets)
	}
}

func TestFetch_DirectURLNon2xxIsTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	runner := &fakeRunner{}
	f := NewFetcher(runner, &fakeStore{}, srv.Client())

	err := f.Fetch(context.Background(), source.Descriptor{Kind: source.KindDirectURL, Value: srv.URL + "/x.tgz"})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if te.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", te.StatusCode)
	}
	if len(runner.targets) != 0 {
		t.Error("installer must not run after a transport failure")
	}
}

func TestFetch_DirectURLUnreachableIsTransportError(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	f := NewFetcher(runner, &fakeStore{}, nil)

	// Reserved TEST-NET address; the request errors without a response.
	err := f.Fetch(context.Background(), source.Descriptor{Kind: source.KindDirectURL, Value: "https://192.0.2.1:1/x.tgz"})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if len(runner.targets) != 0 {
		t.Error("installer must not run after a transport failure")
	}
}

func TestFetch_StagingWriteFailureSkipsInstaller(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "bytes")
	}))
	defer srv.Close()

	runner := &fakeRunner{}
	store := &fakeStore{failed: os.ErrPermission}
	f := NewFetcher(runner, store, srv.Client())

	err := f.Fetch(context.Background(), source.Descriptor{Kind: source.KindDirectURL, Value: srv.URL + "/x.tgz"})
	if !errors.Is(err, ErrStagingWrite) {
		t.Fatalf("expected ErrStagingWrite, got %v", err)
	}
	if len(runner.targets) != 0 {
		t.Error("installer must not run after a staging write failure")
	}
}

func TestFetch_ExitCodeCarried(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{results: []*RunResult{{ExitCode: types.ExitCode(7)}}}
	f := NewFetcher(runner, &fakeStore{}, nil)

	err := f.Fetch(context.Background(), source.Descriptor{Kind: source.KindRegistry, Value: "x"})
	var pe *ProcessExitError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProcessExitError, got %v", err)
	}
	if pe.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", pe.ExitCode)
	}
	if !strings.Contains(pe.Error(), "exit 7") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestArtifactName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/pkgs/x.tgz", "x.tgz"},
		{"https://example.com/x.tgz?sig=abc", "x.tgz"},
		{"https://example.com/", fallbackArtifactName},
		{"https://example.com", fallbackArtifactName},
	}
	for _, tt := range tests {
		if got := artifactName(tt.url); got != tt.want {
			t.Errorf("artifactName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
