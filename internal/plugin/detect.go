// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package plugin

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/driftwood-dev/driftwood/internal/manifest"
	"github.com/driftwood-dev/driftwood/internal/scriptparse"
)

// Detection is the outcome of probing one workspace against the registry.
type Detection struct {
	Plugin      Plugin
	ConfigFiles []string // Absolute paths of matched config files.
}

// Detect probes ws against every registered plugin and returns the detections
// in plugin-name order. Each plugin fires at most once per workspace.
// enabled/disabled carry explicit configuration overrides by plugin name.
func Detect(dir string, m *manifest.Manifest, enabled, disabled map[string]bool) ([]Detection, error) {
	scriptBins := scriptBinaries(m)

	var out []Detection
	for _, name := range List() {
		if disabled[name] {
			continue
		}
		p := Get(name)

		configFiles, err := matchConfigFiles(dir, p.ConfigFilePatterns())
		if err != nil {
			return nil, err
		}

		fire := enabled[name] || len(configFiles) > 0 || matchesDep(m, p.DepNames()) || matchesScript(scriptBins, p.ScriptBinaries())
		if !fire {
			continue
		}
		out = append(out, Detection{Plugin: p, ConfigFiles: configFiles})
	}
	return out, nil
}

// matchConfigFiles expands config file patterns inside dir. node_modules
// never matches.
func matchConfigFiles(dir string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pat := range patterns {
		matches, err := doublestar.FilepathGlob(filepath.Join(dir, pat))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func matchesDep(m *manifest.Manifest, names []string) bool {
	for _, name := range names {
		if m.HasDep(name) {
			return true
		}
	}
	return false
}

// scriptBinaries extracts every binary invoked by the manifest's scripts.
func scriptBinaries(m *manifest.Manifest) map[string]bool {
	bins := make(map[string]bool)
	for _, cmd := range m.Scripts {
		for _, bin := range scriptparse.Extract(cmd).Binaries {
			bins[bin] = true
		}
	}
	return bins
}

func matchesScript(scriptBins map[string]bool, names []string) bool {
	for _, name := range names {
		if scriptBins[name] {
			return true
		}
	}
	return false
}
