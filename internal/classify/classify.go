// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package classify turns the traversal result into the final report: unused
// files, unused and unlisted dependencies, unlisted binaries, unresolved
// imports, and unused exports and members.
package classify

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/driftwood-dev/driftwood/internal/entry"
	"github.com/driftwood-dev/driftwood/internal/extract"
	"github.com/driftwood-dev/driftwood/internal/issue"
	"github.com/driftwood-dev/driftwood/internal/resolve"
	"github.com/driftwood-dev/driftwood/internal/scriptparse"
	"github.com/driftwood-dev/driftwood/internal/traverse"
	"github.com/driftwood-dev/driftwood/internal/workspace"
)

// Options control which issues are produced and how exports are judged.
type Options struct {
	IncludeEntryExports     bool
	ClassMembers            bool
	EnumMembers             bool
	TypeOnlyCountsAsUse     bool
	IgnoreExportsUsedInFile bool

	IgnoreDependencies []string // Names or globs.
	IgnoreBinaries     []string // Names or globs.
	IgnoreTags         []string // JSDoc tags that suppress export reports.

	Include []issue.Kind // Empty means all kinds.
	Exclude []issue.Kind
}

// Input is everything one classification pass reads.
type Input struct {
	Root        string
	Tree        *workspace.Tree
	Sets        map[string]*entry.Set
	Trav        *traverse.Result
	Bins        *workspace.BinRegistry
	Diagnostics []issue.Diagnostic // Pre-traversal diagnostics to carry over.
}

// alwaysIgnored lists dependencies that are never reported unused because
// their use is implied by the toolchain rather than by imports.
var alwaysIgnored = map[string]bool{
	"@types/node": true,
}

// suppressTags are JSDoc tags that always keep an export out of the report.
var suppressTags = []string{"public", "alias"}

// Run classifies one traversal into a Report. Issues come out grouped by
// kind in report order, then by workspace, then by file and symbol, so runs
// over identical inputs are byte-identical.
func Run(in Input, opts Options) *issue.Report {
	c := &classifier{in: in, opts: opts, byKind: make(map[issue.Kind][]issue.Issue)}

	c.unusedFiles()
	c.dependencies()
	c.unresolvedImports()
	c.unlistedBinaries()
	c.exports()

	var issues []issue.Issue
	for _, kind := range issue.AllKinds {
		if !c.kindEnabled(kind) {
			continue
		}
		batch := c.byKind[kind]
		sort.Slice(batch, func(i, j int) bool {
			a, b := batch[i], batch[j]
			if a.Workspace != b.Workspace {
				return a.Workspace < b.Workspace
			}
			if a.File != b.File {
				return a.File < b.File
			}
			if a.Symbol != b.Symbol {
				return a.Symbol < b.Symbol
			}
			return a.Line < b.Line
		})
		issues = append(issues, batch...)
	}

	diags := append(append([]issue.Diagnostic{}, in.Diagnostics...), in.Trav.Diagnostics...)
	for i := range diags {
		if diags[i].File != "" {
			diags[i].File = c.rel(diags[i].File)
		}
	}
	return issue.NewReport(in.Root, issues, diags)
}

type classifier struct {
	in     Input
	opts   Options
	byKind map[issue.Kind][]issue.Issue
}

func (c *classifier) add(is issue.Issue) {
	c.byKind[is.Kind] = append(c.byKind[is.Kind], is)
}

func (c *classifier) kindEnabled(kind issue.Kind) bool {
	for _, k := range c.opts.Exclude {
		if k == kind {
			return false
		}
	}
	if len(c.opts.Include) == 0 {
		return true
	}
	for _, k := range c.opts.Include {
		if k == kind {
			return true
		}
	}
	return false
}

func (c *classifier) rel(path string) string {
	rel, err := filepath.Rel(c.in.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// ancestorsFirst iterates workspaces from the root down.
func (c *classifier) ancestorsFirst(fn func(ws *workspace.Workspace)) {
	all := c.in.Tree.All
	for i := len(all) - 1; i >= 0; i-- {
		fn(all[i])
	}
}

// unusedFiles reports project files that are neither reachable nor ignored.
// Entry files are reachable by construction and never appear.
func (c *classifier) unusedFiles() {
	g := c.in.Trav.Graph
	c.ancestorsFirst(func(ws *workspace.Workspace) {
		set, ok := c.in.Sets[ws.Path]
		if !ok {
			return
		}
		for _, path := range set.Project {
			if set.IsIgnored(path) {
				continue
			}
			if id, ok := g.Lookup(path); ok && g.ReachableInAny(id) {
				continue
			}
			c.add(issue.Issue{
				Workspace: ws.Name,
				File:      c.rel(path),
				Kind:      issue.KindUnusedFile,
				Severity:  issue.SeverityError,
			})
		}
	})
}

// dependencies reports both directions: declared-but-unused and
// used-but-undeclared.
func (c *classifier) dependencies() {
	c.ancestorsFirst(func(ws *workspace.Workspace) {
		for _, pat := range c.opts.IgnoreDependencies {
			for _, name := range ws.Attribution.Names() {
				if nameMatches(pat, name) {
					ws.Attribution.MarkIgnored(name)
				}
			}
		}
		for _, name := range ws.Attribution.Unused() {
			if alwaysIgnored[name] {
				continue
			}
			if base := typesBase(name); base != "" {
				// A @types package rides on its runtime package.
				if base == "node" || ws.Attribution.Used(base) {
					continue
				}
			}
			c.add(issue.Issue{
				Workspace: ws.Name,
				Symbol:    name,
				Kind:      issue.KindUnusedDependency,
				Severity:  issue.SeverityError,
			})
		}
	})

	seen := make(map[string]bool)
	record := func(ws *workspace.Workspace, pkg, file string) {
		wsName := ""
		if ws != nil {
			wsName = ws.Name
		}
		key := wsName + "\x00" + pkg
		if seen[key] || pkg == "" {
			return
		}
		seen[key] = true
		c.add(issue.Issue{
			Workspace: wsName,
			File:      c.rel(file),
			Symbol:    pkg,
			Kind:      issue.KindUnlistedDep,
			Severity:  issue.SeverityError,
		})
	}

	for _, ext := range c.in.Trav.Externals {
		if ext.Declared || ext.Builtin {
			continue
		}
		record(ext.Workspace, ext.Package, ext.File)
	}
	for _, un := range c.in.Trav.Unresolved {
		if !un.Bare {
			continue
		}
		pkg, _ := resolve.SplitPackage(un.Spec)
		record(c.in.Tree.OwnerOf(un.File), pkg, un.File)
	}
}

// unresolvedImports reports relative specifiers that matched no file.
func (c *classifier) unresolvedImports() {
	for _, un := range c.in.Trav.Unresolved {
		if un.Bare {
			continue
		}
		ws := c.in.Tree.OwnerOf(un.File)
		wsName := ""
		if ws != nil {
			wsName = ws.Name
		}
		c.add(issue.Issue{
			Workspace: wsName,
			File:      c.rel(un.File),
			Symbol:    un.Spec,
			Line:      int(un.Line),
			Kind:      issue.KindUnresolvedImport,
			Severity:  issue.SeverityError,
		})
	}
}

// unlistedBinaries reports script binaries no installed package provides.
func (c *classifier) unlistedBinaries() {
	c.ancestorsFirst(func(ws *workspace.Workspace) {
		names := make([]string, 0, len(ws.Manifest.Scripts))
		for name := range ws.Manifest.Scripts {
			names = append(names, name)
		}
		sort.Strings(names)

		seen := make(map[string]bool)
		for _, script := range names {
			res := scriptparse.Extract(ws.Manifest.Scripts[script])
			for _, bin := range res.Binaries {
				if bin == "" || seen[bin] {
					continue
				}
				seen[bin] = true
				if osProvided(bin) || c.binIgnored(bin) {
					continue
				}
				if _, ok := c.in.Bins.Lookup(bin); ok {
					continue
				}
				if ws.Manifest.HasDep(bin) {
					continue
				}
				c.add(issue.Issue{
					Workspace: ws.Name,
					Symbol:    bin,
					Kind:      issue.KindUnlistedBinary,
					Severity:  issue.SeverityWarn,
				})
			}
		}
	})
}

func (c *classifier) binIgnored(bin string) bool {
	for _, pat := range c.opts.IgnoreBinaries {
		if nameMatches(pat, bin) {
			return true
		}
	}
	return false
}

// exports reports unused exports and, when the modes are on, unused class
// and enum members.
func (c *classifier) exports() {
	g := c.in.Trav.Graph
	c.ancestorsFirst(func(ws *workspace.Workspace) {
		set, ok := c.in.Sets[ws.Path]
		if !ok {
			return
		}
		for _, path := range set.Project {
			id, ok := g.Lookup(path)
			if !ok || !g.ReachableInAny(id) {
				// Unreachable files are already one unused-file issue.
				continue
			}
			if set.IsIgnored(path) {
				continue
			}
			isEntry := c.in.Trav.EntryFiles[path]
			for _, e := range g.Exports(id) {
				c.export(ws, path, id, e, isEntry)
			}
		}
	})
}

func (c *classifier) export(ws *workspace.Workspace, path string, id uint32, e extract.Export, isEntry bool) {
	kind := issue.KindUnusedExport
	switch e.Kind {
	case extract.ClassMember:
		if !c.opts.ClassMembers {
			return
		}
		kind = issue.KindUnusedClassMember
	case extract.EnumMember:
		if !c.opts.EnumMembers {
			return
		}
		kind = issue.KindUnusedEnumMember
	default:
		if isEntry && !c.opts.IncludeEntryExports {
			return
		}
	}

	for _, tag := range suppressTags {
		if e.HasTag(tag) {
			return
		}
	}
	for _, tag := range c.opts.IgnoreTags {
		if e.HasTag(strings.TrimPrefix(tag, "@")) {
			return
		}
	}

	used := false
	switch e.Kind {
	case extract.ClassMember, extract.EnumMember:
		used = c.in.Trav.MemberUses[e.Name]
	default:
		used = c.in.Trav.Graph.Referenced(id, e.Name, c.opts.TypeOnlyCountsAsUse)
		if !used && c.opts.IgnoreExportsUsedInFile && e.SelfUsed {
			used = true
		}
	}
	if used {
		return
	}

	symbol := e.Name
	if e.Parent != "" {
		symbol = e.Parent + "." + e.Name
	}
	c.add(issue.Issue{
		Workspace: ws.Name,
		File:      c.rel(path),
		Symbol:    symbol,
		Line:      int(e.Line),
		Kind:      kind,
		Severity:  issue.SeverityWarn,
	})
}

// typesBase maps a DefinitelyTyped package name to its runtime package:
// @types/foo to foo, @types/foo__bar to @foo/bar.
func typesBase(name string) string {
	base, ok := strings.CutPrefix(name, "@types/")
	if !ok {
		return ""
	}
	if scope, rest, ok := strings.Cut(base, "__"); ok {
		return "@" + scope + "/" + rest
	}
	return base
}

// nameMatches accepts exact names and doublestar globs.
func nameMatches(pattern, name string) bool {
	if pattern == name {
		return true
	}
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
