// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"depot-cli/internal/issue"
	"depot-cli/pkg/types"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultFileName is the manifest file name looked up in the working
// directory when neither flag nor config provides a path.
const DefaultFileName = "depot.json"

// ErrManifestNotFound is the sentinel error for a missing manifest file.
var ErrManifestNotFound = errors.New("manifest not found")

//go:embed manifest_schema.cue
var manifestSchema string

type (
	// Manifest is the parsed, validated manifest for one installation run.
	// It is read-only once loaded.
	Manifest struct {
		// Modules maps module names to their raw source specifiers.
		Modules map[types.ModuleName]string
		// Performance selects concurrent (true) vs sequential (false)
		// batch execution.
		Performance bool
		// FilePath is the path the manifest was loaded from.
		FilePath string
	}

	// manifestDoc is the wire shape of the customDeps document.
	manifestDoc struct {
		CustomDeps struct {
			Module      map[string]string `json:"module"`
			Performance bool              `json:"performance"`
		} `json:"customDeps"`
	}
)

// SortedNames returns the module names in lexicographic order. Sequential
// batch execution iterates in this order, which keeps runs deterministic
// even though JSON objects carry no ordering.
func (m *Manifest) SortedNames() []types.ModuleName {
	names := maps.Keys(m.Modules)
	slices.Sort(names)
	return names
}

// Load reads, validates, and decodes the manifest at path.
//
// Failure modes are all configuration errors (fatal before any
// installation): missing file, malformed JSON, schema violation, missing
// customDeps section, missing or empty module mapping, or an invalid
// module name.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, issue.NewContext().
				WithOperation("load manifest").
				WithResource(path).
				WithSuggestion("Create a depot.json with a customDeps section").
				WithSuggestion("Or pass an explicit path with --manifest").
				Wrap(fmt.Errorf("%w: %s", ErrManifestNotFound, path)).
				BuildError()
		}
		return nil, issue.NewContext().
			WithOperation("load manifest").
			WithResource(path).
			Wrap(err).
			BuildError()
	}

	doc, err := parseAndValidate(data, path)
	if err != nil {
		return nil, err
	}

	if len(doc.CustomDeps.Module) == 0 {
		return nil, issue.NewContext().
			WithOperation("validate manifest").
			WithResource(path).
			WithSuggestion("List at least one module under customDeps.module (module name -> source specifier)").
			Wrap(errors.New("empty module mapping in customDeps")).
			BuildError()
	}

	modules := make(map[types.ModuleName]string, len(doc.CustomDeps.Module))
	for name, specifier := range doc.CustomDeps.Module {
		mod := types.ModuleName(name)
		if isValid, errs := mod.IsValid(); !isValid {
			return nil, issue.NewContext().
				WithOperation("validate manifest").
				WithResource(path).
				WithSuggestion("Module names must be non-empty and contain no whitespace").
				Wrap(errs[0]).
				BuildError()
		}
		modules[mod] = specifier
	}

	return &Manifest{
		Modules:     modules,
		Performance: doc.CustomDeps.Performance,
		FilePath:    path,
	}, nil
}

// parseAndValidate compiles the JSON document with CUE, unifies it with the
// embedded #Manifest schema, and decodes the customDeps section. JSON is a
// CUE subset, so the document compiles directly.
func parseAndValidate(data []byte, path string) (*manifestDoc, error) {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(manifestSchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile manifest schema: %w", schemaValue.Err())
	}

	docValue := ctx.CompileBytes(data, cue.Filename(path))
	if docValue.Err() != nil {
		return nil, issue.NewContext().
			WithOperation("parse manifest").
			WithResource(path).
			WithSuggestion("Check that the file contains valid JSON").
			Wrap(docValue.Err()).
			BuildError()
	}

	// Distinguish the two missing-section cases before schema unification so
	// the user sees which level of the document is wrong.
	custom := docValue.LookupPath(cue.ParsePath("customDeps"))
	if !custom.Exists() {
		return nil, issue.NewContext().
			WithOperation("validate manifest").
			WithResource(path).
			WithSuggestion("Add a top-level customDeps section").
			Wrap(errors.New("missing customDeps section")).
			BuildError()
	}
	if !custom.LookupPath(cue.ParsePath("module")).Exists() {
		return nil, issue.NewContext().
			WithOperation("validate manifest").
			WithResource(path).
			WithSuggestion("Add a module mapping under customDeps (module name -> source specifier)").
			Wrap(errors.New("missing module mapping in customDeps")).
			BuildError()
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Manifest"))
	unified := schema.Unify(docValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, issue.NewContext().
			WithOperation("validate manifest").
			WithResource(path).
			WithSuggestion("Every customDeps.module value must be a string source specifier").
			WithSuggestion("customDeps.performance must be a boolean when present").
			Wrap(err).
			BuildError()
	}

	var doc manifestDoc
	if err := unified.Decode(&doc); err != nil {
		return nil, issue.NewContext().
			WithOperation("decode manifest").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	return &doc, nil
}
