// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package config

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ForWorkspace resolves the effective per-workspace settings for the
// workspace at rel (root workspace is "."). Root-level lists apply to every
// workspace; a matching workspaces entry appends to them. Matching entries
// apply in sorted key order, so later keys' patterns override in ordered
// evaluation.
func (c *Config) ForWorkspace(rel string) WorkspaceConfig {
	out := WorkspaceConfig{
		Entry:              append([]string{}, c.Entry...),
		Project:            append([]string{}, c.Project...),
		Ignore:             append([]string{}, c.Ignore...),
		IgnoreDependencies: append([]string{}, c.IgnoreDependencies...),
		IgnoreBinaries:     append([]string{}, c.IgnoreBinaries...),
	}
	if rel != "." {
		// Root-level entry and project globs are anchored at the root
		// workspace only; child workspaces inherit the remaining lists.
		out.Entry = nil
		out.Project = nil
	}

	keys := make([]string, 0, len(c.Workspaces))
	for k := range c.Workspaces {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		ok, err := doublestar.Match(key, rel)
		if err != nil || !ok {
			continue
		}
		wc := c.Workspaces[key]
		out.Entry = append(out.Entry, wc.Entry...)
		out.Project = append(out.Project, wc.Project...)
		out.Ignore = append(out.Ignore, wc.Ignore...)
		out.IgnoreDependencies = append(out.IgnoreDependencies, wc.IgnoreDependencies...)
		out.IgnoreBinaries = append(out.IgnoreBinaries, wc.IgnoreBinaries...)
	}
	return out
}

// PluginToggles splits the plugins map into explicit enables and disables.
func (c *Config) PluginToggles() (enabled, disabled map[string]bool) {
	enabled = make(map[string]bool)
	disabled = make(map[string]bool)
	for name, on := range c.Plugins {
		if on {
			enabled[name] = true
		} else {
			disabled[name] = true
		}
	}
	return enabled, disabled
}
