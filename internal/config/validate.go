// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/driftwood-dev/driftwood/internal/issue"
	"github.com/driftwood-dev/driftwood/internal/plugin"
)

// Validate checks all fields in the config and returns all errors at once.
// Configuration errors are fatal before analysis starts.
func Validate(cfg *Config) error {
	var errs []string

	checkGlobs := func(field string, patterns []string) {
		for _, pat := range patterns {
			pat = strings.TrimPrefix(pat, "!")
			if !doublestar.ValidatePattern(pat) {
				errs = append(errs, fmt.Sprintf("%s: invalid glob %q", field, pat))
			}
		}
	}
	checkGlobs("entry", cfg.Entry)
	checkGlobs("project", cfg.Project)
	checkGlobs("ignore", cfg.Ignore)

	checkKinds := func(field string, kinds []string) {
		for _, k := range kinds {
			if !knownKind(k) {
				errs = append(errs, fmt.Sprintf("%s: unknown issue kind %q", field, k))
			}
		}
	}
	checkKinds("include", cfg.Include)
	checkKinds("exclude", cfg.Exclude)

	for name := range cfg.Plugins {
		if plugin.Get(name) == nil {
			errs = append(errs, fmt.Sprintf("plugins.%s: unknown plugin", name))
		}
	}

	for dir, wc := range cfg.Workspaces {
		if !doublestar.ValidatePattern(dir) {
			errs = append(errs, fmt.Sprintf("workspaces.%s: invalid workspace glob", dir))
		}
		checkGlobs("workspaces."+dir+".entry", wc.Entry)
		checkGlobs("workspaces."+dir+".project", wc.Project)
		checkGlobs("workspaces."+dir+".ignore", wc.Ignore)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Kinds maps the configured kind names onto issue kinds. Call after
// Validate; unknown names are dropped.
func Kinds(names []string) []issue.Kind {
	var out []issue.Kind
	for _, n := range names {
		if knownKind(n) {
			out = append(out, issue.Kind(n))
		}
	}
	return out
}

func knownKind(name string) bool {
	for _, k := range issue.AllKinds {
		if string(k) == name {
			return true
		}
	}
	return false
}
