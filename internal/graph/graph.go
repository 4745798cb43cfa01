// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package graph holds the shared reference graph: interned file ids, the
// file-import adjacency, per-channel reachability bitsets, and per-export
// reference marks. All mutation goes through one writer, the traversal
// engine; the classifier only reads.
package graph

import (
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	graphlib "github.com/dominikbraun/graph"

	"github.com/driftwood-dev/driftwood/internal/extract"
)

// Channel selects which reachability channel an edge or mark belongs to.
type Channel int

const (
	// ValueChannel carries runtime imports.
	ValueChannel Channel = iota
	// TypeChannel carries type-only imports.
	TypeChannel
)

// refState tracks which channels referenced one export name.
type refState struct {
	value bool
	typed bool
}

// Graph is the reference graph over interned files.
type Graph struct {
	mu sync.RWMutex

	ids   map[string]uint32
	paths []string

	adj graphlib.Graph[uint32, uint32]

	reachValue *roaring.Bitmap
	reachType  *roaring.Bitmap

	exports map[uint32][]extract.Export
	refs    map[uint32]map[string]refState

	// allRefs marks files whose whole export surface is referenced, from
	// whole-namespace uses or star re-exports.
	allRefs *roaring.Bitmap
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		ids:        make(map[string]uint32),
		adj:        graphlib.New(func(v uint32) uint32 { return v }, graphlib.Directed()),
		reachValue: roaring.New(),
		reachType:  roaring.New(),
		exports:    make(map[uint32][]extract.Export),
		refs:       make(map[uint32]map[string]refState),
		allRefs:    roaring.New(),
	}
}

// Intern returns the dense id of path, assigning one on first sight.
func (g *Graph) Intern(path string) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id, ok := g.ids[path]; ok {
		return id
	}
	id := uint32(len(g.paths))
	g.ids[path] = id
	g.paths = append(g.paths, path)
	_ = g.adj.AddVertex(id)
	return id
}

// PathOf maps an id back to its path.
func (g *Graph) PathOf(id uint32) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.paths[id]
}

// Lookup returns the id of path without interning.
func (g *Graph) Lookup(path string) (uint32, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	id, ok := g.ids[path]
	return id, ok
}

// Len is the number of interned files.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.paths)
}

// AddEdge records an import edge between two interned files. Duplicate and
// self edges are ignored.
func (g *Graph) AddEdge(from, to uint32) {
	if from == to {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	_ = g.adj.AddEdge(from, to)
}

// MarkReachable marks id reachable in ch. Value reachability implies nothing
// about the type channel and vice versa. Reports whether the mark was new.
func (g *Graph) MarkReachable(id uint32, ch Channel) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bitmap(ch).CheckedAdd(id)
}

// Reachable reports whether id is reachable in ch.
func (g *Graph) Reachable(id uint32, ch Channel) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.bitmap(ch).Contains(id)
}

// ReachableInAny reports whether id is reachable in either channel.
func (g *Graph) ReachableInAny(id uint32) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reachValue.Contains(id) || g.reachType.Contains(id)
}

func (g *Graph) bitmap(ch Channel) *roaring.Bitmap {
	if ch == TypeChannel {
		return g.reachType
	}
	return g.reachValue
}

// SetExports installs the export list of a file. Installation is write-once;
// later calls for the same id are ignored.
func (g *Graph) SetExports(id uint32, exports []extract.Export) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.exports[id]; ok {
		return
	}
	g.exports[id] = exports
}

// Exports returns the export list of a file, nil when never extracted.
func (g *Graph) Exports(id uint32) []extract.Export {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.exports[id]
}

// MarkRef marks export name of id referenced in the channel implied by
// typeOnly.
func (g *Graph) MarkRef(id uint32, name string, typeOnly bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.refs[id]
	if !ok {
		m = make(map[string]refState)
		g.refs[id] = m
	}
	st := m[name]
	if typeOnly {
		st.typed = true
	} else {
		st.value = true
	}
	m[name] = st
}

// MarkAllRefs marks every export of id referenced, present and future.
func (g *Graph) MarkAllRefs(id uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.allRefs.Add(id)
}

// AllRefsMarked reports whether id had a whole-surface reference.
func (g *Graph) AllRefsMarked(id uint32) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.allRefs.Contains(id)
}

// Referenced reports whether export name of id has any reference.
// typeCountsAsUse controls whether a type-channel reference counts.
func (g *Graph) Referenced(id uint32, name string, typeCountsAsUse bool) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.allRefs.Contains(id) {
		return true
	}
	st, ok := g.refs[id][name]
	if !ok {
		return false
	}
	return st.value || (typeCountsAsUse && st.typed)
}

// ImportersOf returns the ids of files with an edge into id, in ascending id
// order.
func (g *Graph) ImportersOf(id uint32) []uint32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	preds, err := g.adj.PredecessorMap()
	if err != nil {
		return nil
	}
	var out []uint32
	for from := range preds[id] {
		out = append(out, from)
	}
	sortIDs(out)
	return out
}

// ImportsOf returns the ids id has an edge into, in ascending id order.
func (g *Graph) ImportsOf(id uint32) []uint32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	adjacency, err := g.adj.AdjacencyMap()
	if err != nil {
		return nil
	}
	var out []uint32
	for to := range adjacency[id] {
		out = append(out, to)
	}
	sortIDs(out)
	return out
}

func sortIDs(ids []uint32) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
