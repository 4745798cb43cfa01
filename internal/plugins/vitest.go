// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package plugins

import (
	"github.com/driftwood-dev/driftwood/internal/plugin"
)

func init() {
	plugin.Register(&Vitest{})
}

// Vitest contributes test files as entries and attributes vitest plus the
// environment and coverage packages its config names.
type Vitest struct{}

func (*Vitest) Name() string { return "vitest" }

func (*Vitest) ConfigFilePatterns() []string {
	return []string{
		"vitest.config.{js,ts,mjs,cjs,mts,cts}",
		"vitest.workspace.{js,ts,json}",
	}
}

func (*Vitest) DepNames() []string { return []string{"vitest"} }

func (*Vitest) ScriptBinaries() []string { return []string{"vitest"} }

func (*Vitest) Resolve(ctx plugin.Context) (plugin.Contribution, error) {
	entries := relConfigPatterns(ctx)
	entries = append(entries,
		"**/*.{test,spec}.{js,jsx,ts,tsx,mjs,cjs}",
	)

	deps := selfDep(ctx, "vitest", false)
	deps = append(deps, depsMentionedIn(ctx, false)...)
	return plugin.Contribution{
		EntryPatterns: entries,
		Deps:          deps,
	}, nil
}

var _ plugin.Plugin = (*Vitest)(nil)
