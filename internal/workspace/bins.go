// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/driftwood-dev/driftwood/internal/manifest"
)

// BinRegistry maps binary command names to the installed package that
// contributes them.
type BinRegistry struct {
	byName map[string]string
}

// Lookup returns the contributing package for a binary name.
func (r *BinRegistry) Lookup(bin string) (string, bool) {
	pkg, ok := r.byName[bin]
	return pkg, ok
}

// InstalledBins scans the bin fields of every package declared anywhere in
// the tree, reading each installed package's manifest out of node_modules.
// Packages that are not installed contribute nothing; this is best-effort by
// design since the unlisted-binary report falls back to an allowlist.
func InstalledBins(t *Tree) *BinRegistry {
	reg := &BinRegistry{byName: make(map[string]string)}
	for _, ws := range t.All {
		for _, dep := range ws.Attribution.Names() {
			bins := installedBinField(ws.Path, dep)
			for name := range bins {
				if _, taken := reg.byName[name]; !taken {
					reg.byName[name] = dep
				}
			}
		}
		// Workspace packages expose their own bin entries too.
		for name := range ws.Manifest.Bin {
			if _, taken := reg.byName[name]; !taken {
				reg.byName[name] = ws.Manifest.Name
			}
		}
	}
	return reg
}

// installedBinField reads the bin map of an installed package by ascending
// node_modules directories from dir. Decode failures are treated as absent:
// a broken installed manifest is not this repository's problem.
func installedBinField(dir, pkg string) map[string]string {
	for d := dir; ; d = filepath.Dir(d) {
		pkgFile := filepath.Join(d, "node_modules", pkg, manifest.FileName)
		data, err := os.ReadFile(pkgFile) //nolint:gosec // trusted path from caller
		if err == nil {
			var raw struct {
				Name string          `json:"name"`
				Bin  json.RawMessage `json:"bin"`
			}
			if json.Unmarshal(data, &raw) != nil {
				return nil
			}
			bins, err := manifest.ParseBin(raw.Bin, raw.Name)
			if err != nil {
				return nil
			}
			return bins
		}
		if filepath.Dir(d) == d {
			return nil
		}
	}
}
