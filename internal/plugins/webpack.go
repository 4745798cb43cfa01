// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package plugins

import (
	"github.com/driftwood-dev/driftwood/internal/plugin"
)

func init() {
	plugin.Register(&Webpack{})
}

// Webpack attributes webpack plus the loaders and plugins its config names.
type Webpack struct{}

func (*Webpack) Name() string { return "webpack" }

func (*Webpack) ConfigFilePatterns() []string {
	return []string{"webpack.config.{js,ts,mjs,cjs}", "webpack.*.config.{js,ts,mjs,cjs}"}
}

func (*Webpack) DepNames() []string { return []string{"webpack"} }

func (*Webpack) ScriptBinaries() []string { return []string{"webpack", "webpack-dev-server"} }

func (*Webpack) Resolve(ctx plugin.Context) (plugin.Contribution, error) {
	deps := selfDep(ctx, "webpack", false)
	deps = append(deps, depsMentionedIn(ctx, false)...)
	return plugin.Contribution{
		EntryPatterns: relConfigPatterns(ctx),
		Deps:          deps,
	}, nil
}

var _ plugin.Plugin = (*Webpack)(nil)
