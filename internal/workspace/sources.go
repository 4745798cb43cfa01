// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// pnpmWorkspace represents the structure of a pnpm-workspace.yaml file.
type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// lernaConfig represents the subset of lerna.json fields we need.
type lernaConfig struct {
	Packages []string `json:"packages"`
}

// workspacePatterns collects workspace glob patterns declared by ws from all
// supported sources: the manifest workspaces field, pnpm-workspace.yaml, and
// lerna.json. Sources union; duplicates collapse.
func workspacePatterns(ws *Workspace) ([]string, error) {
	seen := make(map[string]bool)
	var patterns []string

	add := func(pats []string) {
		for _, p := range pats {
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			patterns = append(patterns, p)
		}
	}

	add(ws.Manifest.Workspaces)

	pnpm, err := pnpmPatterns(ws.Path)
	if err != nil {
		return nil, err
	}
	add(pnpm)

	lerna, err := lernaPatterns(ws.Path)
	if err != nil {
		return nil, err
	}
	add(lerna)

	return patterns, nil
}

// pnpmPatterns reads pnpm-workspace.yaml if present.
func pnpmPatterns(dir string) ([]string, error) {
	wsFile := filepath.Join(dir, "pnpm-workspace.yaml")
	if !fileExists(wsFile) {
		return nil, nil
	}

	data, err := os.ReadFile(wsFile) //nolint:gosec // trusted path from caller
	if err != nil {
		return nil, err
	}

	var ws pnpmWorkspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, err
	}
	return ws.Packages, nil
}

// lernaPatterns reads lerna.json if present.
func lernaPatterns(dir string) ([]string, error) {
	lernaFile := filepath.Join(dir, "lerna.json")
	if !fileExists(lernaFile) {
		return nil, nil
	}

	data, err := os.ReadFile(lernaFile) //nolint:gosec // trusted path from caller
	if err != nil {
		return nil, err
	}

	var cfg lernaConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return cfg.Packages, nil
}
