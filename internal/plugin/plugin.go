// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package plugin defines the per-tool adapter contract and a registry for
// managing available plugins.
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/driftwood-dev/driftwood/internal/manifest"
)

// Context is the input triple a plugin resolves against. Plugins must be
// pure over it: same context, same contribution.
type Context struct {
	WorkspaceDir string             // Absolute workspace directory.
	ConfigFiles  []string           // Detected config files, absolute, sorted.
	Manifest     *manifest.Manifest // The workspace manifest.
}

// AttributedDep is a package name a plugin guarantees is used.
type AttributedDep struct {
	Name       string
	Production bool // Production classification; false means dev.
}

// Contribution is the union-able output of one plugin resolution.
type Contribution struct {
	EntryPatterns   []string // Extra entry globs, workspace-relative.
	ProjectPatterns []string // Extra project globs, workspace-relative.
	Deps            []AttributedDep
}

// Merge unions other into c.
func (c *Contribution) Merge(other Contribution) {
	c.EntryPatterns = append(c.EntryPatterns, other.EntryPatterns...)
	c.ProjectPatterns = append(c.ProjectPatterns, other.ProjectPatterns...)
	c.Deps = append(c.Deps, other.Deps...)
}

// Plugin is a per-tool adapter. Detection fires on any of: a config file
// match, a dependency match, a script binary match, or an explicit enable.
type Plugin interface {
	// Name returns the unique plugin name (e.g. "eslint", "vitest").
	Name() string

	// ConfigFilePatterns returns workspace-relative glob patterns naming the
	// tool's config files. Matches both trigger detection and populate
	// Context.ConfigFiles.
	ConfigFilePatterns() []string

	// DepNames returns dependency names whose presence in the manifest
	// triggers detection.
	DepNames() []string

	// ScriptBinaries returns binary names whose appearance in manifest
	// scripts triggers detection.
	ScriptBinaries() []string

	// Resolve produces the plugin's contribution for a detected workspace.
	Resolve(ctx Context) (Contribution, error)
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Plugin)
)

// Register adds a plugin to the global registry.
// It panics if a plugin with the same name is already registered.
func Register(p Plugin) {
	mu.Lock()
	defer mu.Unlock()
	name := p.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("plugin already registered: %s", name))
	}
	registry[name] = p
}

// Get returns the plugin with the given name, or nil if not found.
func Get(name string) Plugin {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// List returns the names of all registered plugins, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Plugin)
}
