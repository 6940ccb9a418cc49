// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedSourceKind is the sentinel error wrapped by UnrecognizedSourceKindError.
var ErrUnrecognizedSourceKind = errors.New("unrecognized source kind")

type (
	// Kind enumerates the closed set of source descriptor variants.
	Kind string

	// Descriptor is the typed result of classifying a source specifier.
	// Exactly one variant applies; Value holds the variant's payload
	// (registry specifier for KindRegistry, fetchable URL otherwise).
	// Descriptors are immutable and owned by the fetch that consumes them.
	Descriptor struct {
		Kind  Kind
		Value string
	}

	// UnrecognizedSourceKindError is returned when a specifier matches no
	// known scheme prefix. It carries the offending specifier for
	// diagnostics and is permanent: callers must not retry it.
	UnrecognizedSourceKindError struct {
		Specifier string
	}
)

const (
	// KindRegistry is a package-registry reference (npm:).
	KindRegistry Kind = "registry"
	// KindVCS is a version-control remote (git:, github:), rewritten to https.
	KindVCS Kind = "vcs"
	// KindDirectURL is a direct https download.
	KindDirectURL Kind = "url"
)

// vcsSchemes is the set of VCS-like scheme prefixes. Every scheme added
// here receives the same https rewrite in Classify.
var vcsSchemes = []string{"git:", "github:"}

// Error implements the error interface for UnrecognizedSourceKindError.
func (e *UnrecognizedSourceKindError) Error() string {
	return fmt.Sprintf("unrecognized source kind for specifier %q (expected npm:, git:, github:, or https:// prefix)", e.Specifier)
}

// Unwrap returns ErrUnrecognizedSourceKind for errors.Is() compatibility.
func (e *UnrecognizedSourceKindError) Unwrap() error { return ErrUnrecognizedSourceKind }

// Classify parses a source specifier string into a Descriptor. It is a pure
// function: the same specifier always yields the same descriptor.
func Classify(specifier string) (Descriptor, error) {
	if rest, ok := strings.CutPrefix(specifier, "npm:"); ok {
		return Descriptor{Kind: KindRegistry, Value: rest}, nil
	}

	for _, scheme := range vcsSchemes {
		if rest, ok := strings.CutPrefix(specifier, scheme); ok {
			return Descriptor{Kind: KindVCS, Value: rewriteToHTTPS(rest)}, nil
		}
	}

	if strings.HasPrefix(specifier, "https://") {
		return Descriptor{Kind: KindDirectURL, Value: specifier}, nil
	}

	return Descriptor{}, &UnrecognizedSourceKindError{Specifier: specifier}
}

// rewriteToHTTPS turns the remainder of a VCS-like specifier into a
// fetchable https URL. Both "git:acme/widgets" and "git://acme/widgets"
// normalize to "https://acme/widgets".
func rewriteToHTTPS(rest string) string {
	return "https://" + strings.TrimPrefix(rest, "//")
}
