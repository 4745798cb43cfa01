// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package plugins

import (
	"github.com/driftwood-dev/driftwood/internal/plugin"
)

func init() {
	plugin.Register(&Storybook{})
}

// Storybook contributes story files and the .storybook directory as entries.
type Storybook struct{}

func (*Storybook) Name() string { return "storybook" }

func (*Storybook) ConfigFilePatterns() []string {
	return []string{".storybook/main.{js,ts,mjs,cjs}"}
}

func (*Storybook) DepNames() []string {
	return []string{"storybook", "@storybook/react", "@storybook/vue3", "@storybook/svelte"}
}

func (*Storybook) ScriptBinaries() []string { return []string{"storybook"} }

func (*Storybook) Resolve(ctx plugin.Context) (plugin.Contribution, error) {
	entries := relConfigPatterns(ctx)
	entries = append(entries,
		".storybook/**/*.{js,jsx,ts,tsx,mjs,cjs}",
		"**/*.stories.{js,jsx,ts,tsx,mdx}",
	)

	var deps []plugin.AttributedDep
	for _, d := range ctx.Manifest.DeclaredDeps() {
		if d.Name == "storybook" || hasScope(d.Name, "@storybook") {
			deps = append(deps, plugin.AttributedDep{Name: d.Name, Production: false})
		}
	}
	deps = append(deps, depsMentionedIn(ctx, false)...)
	return plugin.Contribution{
		EntryPatterns: entries,
		Deps:          deps,
	}, nil
}

var _ plugin.Plugin = (*Storybook)(nil)
