// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package plugins

import (
	"strings"

	"github.com/driftwood-dev/driftwood/internal/plugin"
)

func init() {
	plugin.Register(&Expo{})
}

// Expo attributes expo and any package the manifest's main field delegates
// to, such as "expo-router/entry".
type Expo struct{}

func (*Expo) Name() string { return "expo" }

func (*Expo) ConfigFilePatterns() []string {
	return []string{"app.json", "app.config.{js,ts}"}
}

func (*Expo) DepNames() []string { return []string{"expo"} }

func (*Expo) ScriptBinaries() []string { return []string{"expo"} }

func (*Expo) Resolve(ctx plugin.Context) (plugin.Contribution, error) {
	deps := selfDep(ctx, "expo", true)

	// A bare-specifier main field ("expo-router/entry") makes that package
	// the app entry, so it is a production dependency no matter what the
	// source imports.
	if main := ctx.Manifest.Main; main != "" && !strings.HasPrefix(main, ".") && !strings.HasPrefix(main, "/") {
		if pkg := packageNameOf(main); pkg != "" && ctx.Manifest.HasDep(pkg) {
			deps = append(deps, plugin.AttributedDep{Name: pkg, Production: true})
		}
	}

	return plugin.Contribution{Deps: deps}, nil
}

// packageNameOf strips the subpath from a bare specifier, keeping the scope
// segment when present.
func packageNameOf(spec string) string {
	parts := strings.Split(spec, "/")
	if len(parts) == 0 {
		return ""
	}
	if strings.HasPrefix(parts[0], "@") {
		if len(parts) < 2 {
			return ""
		}
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// hasScope reports whether name lives under the given npm scope.
func hasScope(name, scope string) bool {
	return strings.HasPrefix(name, scope+"/")
}

var _ plugin.Plugin = (*Expo)(nil)
