// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package plugins

import (
	"github.com/driftwood-dev/driftwood/internal/plugin"
)

func init() {
	plugin.Register(&ESLint{})
}

// ESLint attributes eslint itself plus every declared shareable config and
// plugin package named by the workspace's eslint configuration.
type ESLint struct{}

func (*ESLint) Name() string { return "eslint" }

func (*ESLint) ConfigFilePatterns() []string {
	return []string{
		".eslintrc",
		".eslintrc.{js,cjs,json,yml,yaml}",
		"eslint.config.{js,mjs,cjs,ts}",
	}
}

func (*ESLint) DepNames() []string { return []string{"eslint"} }

func (*ESLint) ScriptBinaries() []string { return []string{"eslint"} }

func (*ESLint) Resolve(ctx plugin.Context) (plugin.Contribution, error) {
	deps := selfDep(ctx, "eslint", false)
	deps = append(deps, depsMentionedIn(ctx, false)...)
	return plugin.Contribution{
		EntryPatterns: relConfigPatterns(ctx),
		Deps:          deps,
	}, nil
}

var _ plugin.Plugin = (*ESLint)(nil)
