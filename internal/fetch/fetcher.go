// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"depot-cli/internal/source"
)

// fallbackArtifactName is used when a direct URL has no usable final path
// segment (e.g., "https://example.com/").
const fallbackArtifactName = "artifact"

type (
	// Doer is the minimal HTTP capability needed for streaming downloads.
	// *http.Client satisfies it; tests inject fakes.
	Doer interface {
		Do(req *http.Request) (*http.Response, error)
	}

	// Fetcher installs one classified source descriptor. It is not
	// idempotent: re-invoking re-runs the full install, which is exactly
	// what the retry policy relies on.
	Fetcher struct {
		runner ProcessRunner
		store  StagingStore
		client Doer
	}
)

// NewFetcher wires a Fetcher from its three capabilities. A nil client
// falls back to http.DefaultClient.
func NewFetcher(runner ProcessRunner, store StagingStore, client Doer) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{runner: runner, store: store, client: client}
}

// Fetch performs the installation action for desc. Every returned error is
// one of the three fetch kinds (process exit, transport, staging write),
// except for a descriptor with an unknown kind, which indicates a
// programming error upstream of classification.
func (f *Fetcher) Fetch(ctx context.Context, desc source.Descriptor) error {
	switch desc.Kind {
	case source.KindRegistry, source.KindVCS:
		return f.install(ctx, desc.Value)
	case source.KindDirectURL:
		staged, err := f.download(ctx, desc.Value)
		if err != nil {
			return err
		}
		return f.install(ctx, staged)
	default:
		return fmt.Errorf("unclassified source kind %q for %q", desc.Kind, desc.Value)
	}
}

// install invokes the package manager on target and converts any failure
// into a ProcessExitError carrying the best available diagnostic.
func (f *Fetcher) install(ctx context.Context, target string) error {
	res := f.runner.Install(ctx, target)
	if res.ExitCode.IsSuccess() && res.Err == nil {
		return nil
	}

	diagnostic := strings.TrimSpace(res.Stderr)
	if diagnostic == "" && res.Err != nil {
		diagnostic = res.Err.Error()
	}
	if diagnostic == "" {
		diagnostic = "exit status " + res.ExitCode.String()
	}

	return &ProcessExitError{
		Target:     target,
		ExitCode:   res.ExitCode,
		Diagnostic: diagnostic,
	}
}

// download streams rawURL into the staging store and returns the staged
// file path. Transport failures and staging write failures surface as their
// distinct error kinds; the package manager is not invoked for either.
func (f *Fetcher) download(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &TransportError{URL: rawURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &TransportError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only HTTP response body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	staged, err := f.store.Stage(artifactName(rawURL), resp.Body)
	if err != nil {
		return "", &StagingWriteError{URL: rawURL, Err: err}
	}
	return staged, nil
}

// artifactName derives the staged file name from the URL's final path
// segment. URLs sharing a basename stage to the same file.
func artifactName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallbackArtifactName
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return fallbackArtifactName
	}
	return base
}
