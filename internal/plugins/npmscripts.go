// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package plugins

import (
	"github.com/driftwood-dev/driftwood/internal/plugin"
	"github.com/driftwood-dev/driftwood/internal/scriptparse"
)

func init() {
	plugin.Register(&NpmScripts{})
}

// NpmScripts parses every manifest script, turning referenced source files
// into entries and invoked binaries into dependency attributions. It fires
// for every workspace since the manifest itself is its config file.
type NpmScripts struct{}

func (*NpmScripts) Name() string { return "npm-scripts" }

func (*NpmScripts) ConfigFilePatterns() []string { return []string{"package.json"} }

func (*NpmScripts) DepNames() []string { return nil }

func (*NpmScripts) ScriptBinaries() []string { return nil }

func (*NpmScripts) Resolve(ctx plugin.Context) (plugin.Contribution, error) {
	var contrib plugin.Contribution
	seenDep := make(map[string]bool)

	for _, cmd := range ctx.Manifest.Scripts {
		res := scriptparse.Extract(cmd)
		contrib.EntryPatterns = append(contrib.EntryPatterns, res.ReferencedFiles...)

		for _, bin := range res.Binaries {
			// A script binary marks its providing package used when the
			// binary name matches a declared dep directly.
			if seenDep[bin] || !ctx.Manifest.HasDep(bin) {
				continue
			}
			seenDep[bin] = true
			contrib.Deps = append(contrib.Deps, plugin.AttributedDep{Name: bin, Production: false})
		}
	}
	return contrib, nil
}

var _ plugin.Plugin = (*NpmScripts)(nil)
