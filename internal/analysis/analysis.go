// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package analysis wires the whole pipeline together: workspace discovery,
// plugin detection, entry resolution, the reachability traversal, and final
// classification into a report.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/driftwood-dev/driftwood/internal/classify"
	"github.com/driftwood-dev/driftwood/internal/config"
	"github.com/driftwood-dev/driftwood/internal/entry"
	"github.com/driftwood-dev/driftwood/internal/extract"
	"github.com/driftwood-dev/driftwood/internal/issue"
	"github.com/driftwood-dev/driftwood/internal/parse"
	"github.com/driftwood-dev/driftwood/internal/plugin"
	"github.com/driftwood-dev/driftwood/internal/resolve"
	"github.com/driftwood-dev/driftwood/internal/traverse"
	"github.com/driftwood-dev/driftwood/internal/tsconfig"
	"github.com/driftwood-dev/driftwood/internal/workspace"
)

// Options configure one analysis run.
type Options struct {
	Root    string
	Config  *config.Config
	Workers int
}

// Run executes the full pipeline and returns the report. Workspace and
// configuration errors are fatal; everything downstream demotes to
// diagnostics or issues.
func Run(ctx context.Context, opts Options) (*issue.Report, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	tree, err := workspace.Build(root)
	if err != nil {
		return nil, fmt.Errorf("building workspace tree: %w", err)
	}
	slog.Debug("workspace tree built", "workspaces", len(tree.All))

	tsConfigs := loadTSConfigs(tree, cfg)
	sets, diags, err := resolveEntries(tree, cfg)
	if err != nil {
		return nil, err
	}

	resolver := resolve.New(tree, func(ws *workspace.Workspace) *tsconfig.Config {
		return tsConfigs[ws.Path]
	})
	parser := parse.NewParser()

	engine := traverse.New(tree, resolver, parser, traverse.Options{
		Workers: opts.Workers,
		Extract: extract.Options{
			ClassMembers: cfg.IncludeClassMembers,
			EnumMembers:  cfg.IncludeEnumMembers,
		},
	})
	trav, err := engine.Run(ctx, sets)
	if err != nil {
		return nil, err
	}
	slog.Debug("traversal complete", "files", trav.Graph.Len())

	report := classify.Run(classify.Input{
		Root:        root,
		Tree:        tree,
		Sets:        sets,
		Trav:        trav,
		Bins:        workspace.InstalledBins(tree),
		Diagnostics: diags,
	}, classify.Options{
		IncludeEntryExports:     cfg.IncludeEntryExports,
		ClassMembers:            cfg.IncludeClassMembers,
		EnumMembers:             cfg.IncludeEnumMembers,
		TypeOnlyCountsAsUse:     cfg.TypeOnlyUse(),
		IgnoreExportsUsedInFile: cfg.IgnoreExportsUsedInFile,
		IgnoreDependencies:      cfg.IgnoreDependencies,
		IgnoreBinaries:          cfg.IgnoreBinaries,
		IgnoreTags:              cfg.IgnoreTags,
		Include:                 config.Kinds(cfg.Include),
		Exclude:                 config.Kinds(cfg.Exclude),
	})
	return report, nil
}

// loadTSConfigs loads each workspace's tsconfig.json once, up front, so the
// resolver never touches the cache concurrently. The repo-wide paths map
// from the config file backs workspaces without their own tsconfig.
func loadTSConfigs(tree *workspace.Tree, cfg *config.Config) map[string]*tsconfig.Config {
	out := make(map[string]*tsconfig.Config, len(tree.All))
	for _, ws := range tree.All {
		tc, err := tsconfig.Load(ws.Path)
		if err != nil {
			slog.Debug("tsconfig skipped", "workspace", ws.Rel, "error", err)
		}
		if tc == nil && len(cfg.Paths) > 0 {
			tc = &tsconfig.Config{Dir: tree.Root, BaseURL: tree.Root, Paths: cfg.Paths}
		}
		out[ws.Path] = tc
	}
	return out
}

// resolveEntries runs plugin detection and expands the entry and project
// sets of every workspace.
func resolveEntries(tree *workspace.Tree, cfg *config.Config) (map[string]*entry.Set, []issue.Diagnostic, error) {
	enabled, disabled := cfg.PluginToggles()
	sets := make(map[string]*entry.Set, len(tree.All))
	var diags []issue.Diagnostic

	for i := len(tree.All) - 1; i >= 0; i-- {
		ws := tree.All[i]
		wc := cfg.ForWorkspace(ws.Rel)

		// Merge order is fixed: defaults, then user config, then plugin
		// contributions.
		pats := entry.Patterns{
			Entry:   append(append([]string{}, entry.DefaultEntryPatterns...), wc.Entry...),
			Project: append(append([]string{}, entry.DefaultProjectPatterns...), wc.Project...),
			Ignore:  wc.Ignore,
		}

		contrib, pdiags, err := runPlugins(tree, ws, enabled, disabled)
		if err != nil {
			return nil, nil, fmt.Errorf("workspace %s: %w", ws.Rel, err)
		}
		diags = append(diags, pdiags...)
		pats.Entry = append(pats.Entry, contrib.EntryPatterns...)
		pats.Project = append(pats.Project, contrib.ProjectPatterns...)

		var childDirs []string
		for _, child := range ws.Children {
			childDirs = append(childDirs, child.Path)
		}
		set, ediags, err := entry.Resolve(ws, pats, childDirs)
		if err != nil {
			return nil, nil, fmt.Errorf("workspace %s: %w", ws.Rel, err)
		}
		diags = append(diags, ediags...)
		sets[ws.Path] = set
	}
	return sets, diags, nil
}

// runPlugins detects and resolves every applicable plugin for one
// workspace, booking dependency attributions against the nearest declaring
// ancestor.
func runPlugins(tree *workspace.Tree, ws *workspace.Workspace, enabled, disabled map[string]bool) (plugin.Contribution, []issue.Diagnostic, error) {
	var merged plugin.Contribution
	var diags []issue.Diagnostic

	detections, err := plugin.Detect(ws.Path, ws.Manifest, enabled, disabled)
	if err != nil {
		return merged, nil, err
	}
	for _, det := range detections {
		contrib, err := det.Plugin.Resolve(plugin.Context{
			WorkspaceDir: ws.Path,
			ConfigFiles:  det.ConfigFiles,
			Manifest:     ws.Manifest,
		})
		if err != nil {
			diags = append(diags, issue.Diagnostic{
				File:    ws.Path,
				Message: fmt.Sprintf("plugin %s: %v", det.Plugin.Name(), err),
			})
			continue
		}
		for _, dep := range contrib.Deps {
			if dw := tree.DeclaringWorkspace(ws, dep.Name); dw != nil {
				dw.Attribution.MarkPluginRef(dep.Name, det.Plugin.Name())
			}
		}
		merged.Merge(contrib)
		slog.Debug("plugin resolved", "plugin", det.Plugin.Name(), "workspace", ws.Rel)
	}
	return merged, diags, nil
}
