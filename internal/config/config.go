// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package config handles .driftwood.yaml configuration files.
package config

// FileName is the expected config file name in a repository root.
const FileName = ".driftwood.yaml"

// Config represents the contents of a .driftwood.yaml file.
type Config struct {
	Entry   []string `yaml:"entry,omitempty"`
	Project []string `yaml:"project,omitempty"`
	Ignore  []string `yaml:"ignore,omitempty"`

	IgnoreDependencies []string `yaml:"ignoreDependencies,omitempty"`
	IgnoreBinaries     []string `yaml:"ignoreBinaries,omitempty"`
	IgnoreTags         []string `yaml:"ignoreTags,omitempty"`

	IgnoreExportsUsedInFile bool `yaml:"ignoreExportsUsedInFile,omitempty"`
	IncludeEntryExports     bool `yaml:"includeEntryExports,omitempty"`
	IncludeClassMembers     bool `yaml:"includeClassMembers,omitempty"`
	IncludeEnumMembers      bool `yaml:"includeEnumMembers,omitempty"`

	// TypeOnlyCountsAsUse controls whether a type-only reference keeps a
	// dependency or export alive. Defaults to true when unset.
	TypeOnlyCountsAsUse *bool `yaml:"typeOnlyCountsAsUse,omitempty"`

	Include []string `yaml:"include,omitempty"` // Issue-kind filters.
	Exclude []string `yaml:"exclude,omitempty"`

	// Paths maps specifier aliases to target prefixes, like tsconfig paths
	// but applied repo-wide.
	Paths map[string][]string `yaml:"paths,omitempty"`

	// Plugins toggles plugin detection by name. Absent means automatic.
	Plugins map[string]bool `yaml:"plugins,omitempty"`

	// Workspaces holds per-workspace overrides keyed by workspace-relative
	// directory glob.
	Workspaces map[string]WorkspaceConfig `yaml:"workspaces,omitempty"`
}

// WorkspaceConfig holds per-workspace settings in the config file.
type WorkspaceConfig struct {
	Entry   []string `yaml:"entry,omitempty"`
	Project []string `yaml:"project,omitempty"`
	Ignore  []string `yaml:"ignore,omitempty"`

	IgnoreDependencies []string `yaml:"ignoreDependencies,omitempty"`
	IgnoreBinaries     []string `yaml:"ignoreBinaries,omitempty"`
}

// TypeOnlyUse resolves the TypeOnlyCountsAsUse default.
func (c *Config) TypeOnlyUse() bool {
	if c.TypeOnlyCountsAsUse == nil {
		return true
	}
	return *c.TypeOnlyCountsAsUse
}
