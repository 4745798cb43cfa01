// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package plugins ships the built-in per-tool adapters. Importing it for side
// effects registers every adapter with the plugin registry.
package plugins

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/driftwood-dev/driftwood/internal/plugin"
)

// depsMentionedIn scans the detected config files for occurrences of declared
// dependency names and attributes each one found. Config formats for JS tools
// are executable code, so a textual scan against the declared-dep universe is
// the resolution strategy shared by most adapters.
func depsMentionedIn(ctx plugin.Context, production bool) []plugin.AttributedDep {
	declared := make([]string, 0)
	for _, d := range ctx.Manifest.DeclaredDeps() {
		declared = append(declared, d.Name)
	}

	var out []plugin.AttributedDep
	seen := make(map[string]bool)
	for _, file := range ctx.ConfigFiles {
		data, err := os.ReadFile(file) //nolint:gosec // trusted path from caller
		if err != nil {
			continue
		}
		content := string(data)
		for _, name := range declared {
			if seen[name] || !strings.Contains(content, name) {
				continue
			}
			seen[name] = true
			out = append(out, plugin.AttributedDep{Name: name, Production: production})
		}
	}
	return out
}

// relConfigPatterns converts absolute config file paths back to
// workspace-relative entry patterns.
func relConfigPatterns(ctx plugin.Context) []string {
	var out []string
	for _, file := range ctx.ConfigFiles {
		rel, err := filepath.Rel(ctx.WorkspaceDir, file)
		if err != nil {
			continue
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

// selfDep attributes the tool's own package when declared.
func selfDep(ctx plugin.Context, name string, production bool) []plugin.AttributedDep {
	if !ctx.Manifest.HasDep(name) {
		return nil
	}
	return []plugin.AttributedDep{{Name: name, Production: production}}
}
