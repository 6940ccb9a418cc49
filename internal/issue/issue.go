// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
)

type (
	// Id identifies a known issue for lookup.
	Id int

	// MarkdownMsg is markdown text rendered to the terminal via glamour.
	MarkdownMsg string

	// Issue is a known failure condition with rendered guidance.
	Issue struct {
		id    Id
		mdMsg MarkdownMsg
	}
)

const (
	// ManifestNotFoundId is reported when no depot.json can be located.
	ManifestNotFoundId Id = iota + 1
	// PackageManagerNotFoundId is reported when the configured installer
	// command cannot be resolved on PATH.
	PackageManagerNotFoundId
)

// Test seam for glamour.Render.
var render = glamour.Render

// Id returns the issue's identifier.
func (i *Issue) Id() Id { return i.id }

// MarkdownMsg returns the raw markdown guidance text.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render renders the issue's markdown guidance with the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No manifest found!

We searched for a depot manifest but couldn't find one.

## Search locations (in order of precedence):
1. The --manifest flag value
2. The manifest_path from your config file
3. depot.json in the current directory

## Things you can try:
- Create a manifest in your project directory:
~~~json
{
  "customDeps": {
    "module": { "left-pad": "npm:left-pad" },
    "performance": true
  }
}
~~~

- Or point depot at an existing one:
~~~
$ depot install --manifest path/to/depot.json
~~~`,
	}

	packageManagerNotFoundIssue = &Issue{
		id: PackageManagerNotFoundId,
		mdMsg: `
# Package manager not found!

The configured installer command could not be resolved on your PATH.

## Things you can try:
- Install the package manager (npm ships with Node.js)
- Point depot at a different installer in your config:
~~~
$ depot config show
~~~
and set installer_command in the printed config file.`,
	}
)

// Lookup returns the known Issue for id, or nil if the id is not cataloged.
func Lookup(id Id) *Issue {
	switch id {
	case ManifestNotFoundId:
		return manifestNotFoundIssue
	case PackageManagerNotFoundId:
		return packageManagerNotFoundIssue
	}
	return nil
}
