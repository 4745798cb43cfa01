// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package plugins

import (
	"github.com/driftwood-dev/driftwood/internal/plugin"
)

func init() {
	plugin.Register(&TypeScript{})
}

// TypeScript attributes the compiler and the @types packages and compiler
// plugins the workspace's tsconfig names.
type TypeScript struct{}

func (*TypeScript) Name() string { return "typescript" }

func (*TypeScript) ConfigFilePatterns() []string {
	return []string{"tsconfig.json", "tsconfig.*.json"}
}

func (*TypeScript) DepNames() []string { return []string{"typescript"} }

func (*TypeScript) ScriptBinaries() []string { return []string{"tsc"} }

func (*TypeScript) Resolve(ctx plugin.Context) (plugin.Contribution, error) {
	deps := selfDep(ctx, "typescript", false)
	deps = append(deps, depsMentionedIn(ctx, false)...)
	return plugin.Contribution{Deps: deps}, nil
}

var _ plugin.Plugin = (*TypeScript)(nil)
