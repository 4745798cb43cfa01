// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package traverse runs the reachability fixpoint: entries seed a worklist,
// each file is parsed and extracted, imports resolve to new work, and
// external references land in workspace attribution tables.
package traverse

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/driftwood-dev/driftwood/internal/entry"
	"github.com/driftwood-dev/driftwood/internal/extract"
	"github.com/driftwood-dev/driftwood/internal/graph"
	"github.com/driftwood-dev/driftwood/internal/issue"
	"github.com/driftwood-dev/driftwood/internal/parse"
	"github.com/driftwood-dev/driftwood/internal/resolve"
	"github.com/driftwood-dev/driftwood/internal/workspace"
)

// Options tune one traversal run.
type Options struct {
	Extract extract.Options
	Workers int // Parallel parse width. 0 means GOMAXPROCS.
}

// ExternalRef is one external package reference seen during traversal.
type ExternalRef struct {
	Workspace *workspace.Workspace
	Package   string
	File      string
	Line      uint32
	Builtin   bool
	Declared  bool // Visible somewhere up the workspace chain.
}

// UnresolvedImport is a specifier no resolution step matched.
type UnresolvedImport struct {
	File string
	Spec string
	Line uint32
	Bare bool // Bare specifiers classify as unlisted deps, paths as broken imports.
}

// Result is everything the classifier needs from a traversal.
type Result struct {
	Graph       *graph.Graph
	EntryFiles  map[string]bool
	MemberUses  map[string]bool // Property names accessed anywhere in the tree.
	Externals   []ExternalRef
	Unresolved  []UnresolvedImport
	Diagnostics []issue.Diagnostic
}

// Engine drives the fixpoint. It is single-use.
type Engine struct {
	tree     *workspace.Tree
	resolver *resolve.Resolver
	parser   *parse.Parser
	opts     Options
}

// New builds an Engine over a workspace tree.
func New(tree *workspace.Tree, resolver *resolve.Resolver, parser *parse.Parser, opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{tree: tree, resolver: resolver, parser: parser, opts: opts}
}

// workItem is one (file, channel) pair on the worklist.
type workItem struct {
	id   uint32
	path string
	ch   graph.Channel
}

// Run traverses to fixpoint from the entry sets, keyed by workspace path.
// The worklist is FIFO, seeded by workspace depth (ancestors first) and then
// lexicographically by path, so results are reproducible. Cancellation is checked between
// batches, never mid-file.
func (e *Engine) Run(ctx context.Context, sets map[string]*entry.Set) (*Result, error) {
	res := &Result{
		Graph:      graph.New(),
		EntryFiles: make(map[string]bool),
		MemberUses: make(map[string]bool),
	}

	batch := e.seed(res, sets)
	records := make(map[uint32]*extract.Result)

	for len(batch) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e.extractBatch(ctx, res, records, batch)

		var next []workItem
		for _, item := range batch {
			rec := records[item.id]
			if rec == nil {
				continue
			}
			next = append(next, e.apply(res, item, rec)...)
		}
		slog.Debug("traversal round", "processed", len(batch), "discovered", len(next))
		batch = next
	}
	return res, nil
}

// seed marks the entry files reachable in the value channel and returns the
// initial worklist. Workspaces are visited ancestors first, then by relative
// path.
func (e *Engine) seed(res *Result, sets map[string]*entry.Set) []workItem {
	var batch []workItem
	all := append([]*workspace.Workspace(nil), e.tree.All...)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Depth != all[j].Depth {
			return all[i].Depth < all[j].Depth
		}
		return all[i].Rel < all[j].Rel
	})
	for _, ws := range all {
		set, ok := sets[ws.Path]
		if !ok {
			continue
		}
		for _, path := range set.Entries {
			res.EntryFiles[path] = true
			id := res.Graph.Intern(path)
			if res.Graph.MarkReachable(id, graph.ValueChannel) {
				batch = append(batch, workItem{id: id, path: path, ch: graph.ValueChannel})
			}
		}
	}
	return batch
}

// extractBatch parses and extracts every not-yet-seen file of the batch in
// parallel. Extraction is pure per file, so only the records map is written,
// and only after the group finishes.
func (e *Engine) extractBatch(ctx context.Context, res *Result, records map[uint32]*extract.Result, batch []workItem) {
	type slot struct {
		rec   *extract.Result
		diags []string
		err   error
	}
	var todo []workItem
	for _, item := range batch {
		if _, ok := records[item.id]; !ok {
			records[item.id] = nil
			todo = append(todo, item)
		}
	}

	slots := make([]slot, len(todo))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, item := range todo {
		g.Go(func() error {
			f, err := e.parser.Parse(gctx, item.path)
			if err != nil {
				slots[i] = slot{err: err}
				return nil
			}
			slots[i] = slot{rec: extract.File(f, e.opts.Extract), diags: f.Diagnostics}
			if f.Broken {
				slog.Debug("admitted broken file", "path", item.path)
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, item := range todo {
		if slots[i].err != nil {
			res.Diagnostics = append(res.Diagnostics, issue.Diagnostic{
				File:    item.path,
				Message: "read: " + slots[i].err.Error(),
			})
			records[item.id] = &extract.Result{}
			continue
		}
		for _, d := range slots[i].diags {
			res.Diagnostics = append(res.Diagnostics, issue.Diagnostic{File: item.path, Message: d})
		}
		records[item.id] = slots[i].rec
	}
}

// apply folds one file's record into the graph under the single-writer
// discipline and returns newly discovered work.
func (e *Engine) apply(res *Result, item workItem, rec *extract.Result) []workItem {
	g := res.Graph
	g.SetExports(item.id, rec.Exports)

	var next []workItem
	for _, imp := range rec.Imports {
		if imp.Spec == "" {
			continue
		}
		edgeCh := item.ch
		if imp.TypeOnly {
			edgeCh = graph.TypeChannel
		}
		r := e.resolver.Resolve(imp.Spec, item.path, edgeCh == graph.TypeChannel)
		switch r.Kind {
		case resolve.Internal:
			target := g.Intern(r.Path)
			g.AddEdge(item.id, target)
			if g.MarkReachable(target, edgeCh) {
				next = append(next, workItem{id: target, path: r.Path, ch: edgeCh})
			}
			// A bare specifier landing on a sibling workspace still uses the
			// declared dependency.
			if isBareSpec(imp.Spec) {
				e.attributeInternal(item.path, imp.Spec)
			}
		case resolve.External:
			e.attribute(res, item.path, imp, r)
		default:
			res.Unresolved = append(res.Unresolved, UnresolvedImport{
				File: item.path,
				Spec: imp.Spec,
				Line: imp.Line,
				Bare: isBareSpec(imp.Spec),
			})
		}
	}

	for _, ref := range rec.Refs {
		r := e.resolver.Resolve(ref.Spec, item.path, ref.TypeOnly)
		if r.Kind != resolve.Internal {
			continue
		}
		target := g.Intern(r.Path)
		if ref.Name == "*" {
			g.MarkAllRefs(target)
		} else {
			g.MarkRef(target, ref.Name, ref.TypeOnly)
		}
	}

	for _, name := range rec.MemberUses {
		res.MemberUses[name] = true
	}

	for _, line := range rec.DynamicUnresolvable {
		res.Diagnostics = append(res.Diagnostics, issue.Diagnostic{
			File:    item.path,
			Line:    line,
			Message: "dynamic import with computed specifier cannot be traced",
		})
	}
	return next
}

// attribute books an external reference against the nearest workspace that
// declares the package.
func (e *Engine) attribute(res *Result, fromFile string, imp extract.Import, r resolve.Result) {
	owner := e.tree.OwnerOf(fromFile)
	declared := false
	if owner != nil && !r.Builtin {
		if dw := e.tree.DeclaringWorkspace(owner, r.Package); dw != nil {
			dw.Attribution.MarkFileRef(r.Package, fromFile)
			declared = true
		}
	}
	res.Externals = append(res.Externals, ExternalRef{
		Workspace: owner,
		Package:   r.Package,
		File:      fromFile,
		Line:      imp.Line,
		Builtin:   r.Builtin,
		Declared:  declared,
	})
}

// attributeInternal books a bare specifier that resolved to an internal file
// against the workspace that declares the package.
func (e *Engine) attributeInternal(fromFile, spec string) {
	pkg, _ := resolve.SplitPackage(spec)
	if pkg == "" {
		return
	}
	owner := e.tree.OwnerOf(fromFile)
	if owner == nil {
		return
	}
	if dw := e.tree.DeclaringWorkspace(owner, pkg); dw != nil {
		dw.Attribution.MarkFileRef(pkg, fromFile)
	}
}

func isBareSpec(spec string) bool {
	return !strings.HasPrefix(spec, ".") && !filepath.IsAbs(spec)
}
