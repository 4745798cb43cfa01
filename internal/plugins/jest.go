// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package plugins

import (
	"github.com/driftwood-dev/driftwood/internal/plugin"
)

func init() {
	plugin.Register(&Jest{})
}

// Jest contributes test files as entries and attributes jest plus the
// transforms and reporters its config names.
type Jest struct{}

func (*Jest) Name() string { return "jest" }

func (*Jest) ConfigFilePatterns() []string {
	return []string{
		"jest.config.{js,ts,mjs,cjs,json}",
		"jest.setup.{js,ts,mjs,cjs}",
	}
}

func (*Jest) DepNames() []string { return []string{"jest"} }

func (*Jest) ScriptBinaries() []string { return []string{"jest"} }

func (*Jest) Resolve(ctx plugin.Context) (plugin.Contribution, error) {
	entries := relConfigPatterns(ctx)
	entries = append(entries,
		"**/*.{test,spec}.{js,jsx,ts,tsx,mjs,cjs}",
		"**/__tests__/**/*.{js,jsx,ts,tsx,mjs,cjs}",
		"**/__mocks__/**/*.{js,jsx,ts,tsx,mjs,cjs}",
	)

	deps := selfDep(ctx, "jest", false)
	deps = append(deps, depsMentionedIn(ctx, false)...)
	return plugin.Contribution{
		EntryPatterns: entries,
		Deps:          deps,
	}, nil
}

var _ plugin.Plugin = (*Jest)(nil)
