// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package workspace builds the workspace tree of a JS/TS monorepo and
// attributes declared dependencies to workspaces.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/driftwood-dev/driftwood/internal/manifest"
)

// Workspace represents a single workspace within a monorepo.
type Workspace struct {
	Name     string // Package name, or directory basename when unnamed.
	Path     string // Absolute path.
	Rel      string // Relative to monorepo root; "." for the root itself.
	Depth    int    // Number of ancestor workspaces.
	Manifest *manifest.Manifest
	Parent   *Workspace
	Children []*Workspace

	// Attribution tracks per-dependency usage evidence for this workspace.
	Attribution *Attribution
}

// Tree is the loaded workspace model. All is ordered deepest-first, then
// lexicographically by relative path, which is the iteration order every
// downstream pass uses.
type Tree struct {
	Root string
	All  []*Workspace

	byPath map[string]*Workspace
}

// CyclicWorkspaceError indicates workspace globs that resolve back into an
// ancestor directory.
type CyclicWorkspaceError struct {
	Dir string
}

func (e *CyclicWorkspaceError) Error() string {
	return fmt.Sprintf("cyclic workspace graph at %s", e.Dir)
}

// Build loads the manifest at rootPath and every workspace its globs (npm
// workspaces field, pnpm-workspace.yaml, lerna.json) name, recursively for
// nested workspace declarations.
func Build(rootPath string) (*Tree, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}

	root, err := loadWorkspace(abs, abs)
	if err != nil {
		return nil, err
	}

	tree := &Tree{
		Root:   abs,
		byPath: map[string]*Workspace{abs: root},
	}
	if err := tree.discover(root, map[string]bool{abs: true}); err != nil {
		return nil, err
	}

	tree.link()
	return tree, nil
}

// loadWorkspace reads one workspace's manifest and constructs the node.
func loadWorkspace(dir, root string) (*Workspace, error) {
	m, err := manifest.Load(dir)
	if err != nil {
		return nil, err
	}

	rel, relErr := filepath.Rel(root, dir)
	if relErr != nil {
		rel = filepath.Base(dir)
	}

	name := m.Name
	if name == "" {
		name = filepath.Base(dir)
	}

	return &Workspace{
		Name:        name,
		Path:        dir,
		Rel:         filepath.ToSlash(rel),
		Manifest:    m,
		Attribution: NewAttribution(m),
	}, nil
}

// discover expands ws's workspace globs and recurses into each match.
// visited guards against glob patterns that resolve back up the tree.
func (t *Tree) discover(ws *Workspace, visited map[string]bool) error {
	patterns, err := workspacePatterns(ws)
	if err != nil {
		return err
	}
	if len(patterns) == 0 {
		return nil
	}

	dirs, err := expandDirGlobs(ws.Path, patterns)
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		if !fileExists(filepath.Join(dir, manifest.FileName)) {
			continue
		}
		if visited[dir] || isAncestorOf(dir, ws.Path) {
			return &CyclicWorkspaceError{Dir: dir}
		}
		visited[dir] = true

		child, err := loadWorkspace(dir, t.Root)
		if err != nil {
			return err
		}
		t.byPath[dir] = child

		if err := t.discover(child, visited); err != nil {
			return err
		}
	}
	return nil
}

// link wires parent/child pointers, computes depths, and freezes the
// deepest-first iteration order.
func (t *Tree) link() {
	paths := make([]string, 0, len(t.byPath))
	for p := range t.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		ws := t.byPath[p]
		if parent := t.nearestAncestor(p); parent != nil {
			ws.Parent = parent
			parent.Children = append(parent.Children, ws)
		}
	}

	for _, p := range paths {
		ws := t.byPath[p]
		for a := ws.Parent; a != nil; a = a.Parent {
			ws.Depth++
		}
		t.All = append(t.All, ws)
	}

	sort.SliceStable(t.All, func(i, j int) bool {
		if t.All[i].Depth != t.All[j].Depth {
			return t.All[i].Depth > t.All[j].Depth
		}
		return t.All[i].Rel < t.All[j].Rel
	})
}

// nearestAncestor returns the closest enclosing workspace of path, excluding
// path itself.
func (t *Tree) nearestAncestor(path string) *Workspace {
	dir := filepath.Dir(path)
	for {
		if ws, ok := t.byPath[dir]; ok {
			return ws
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

// OwnerOf returns the workspace that owns path: the nearest enclosing one.
func (t *Tree) OwnerOf(path string) *Workspace {
	dir := path
	for {
		if ws, ok := t.byPath[dir]; ok {
			return ws
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

// ByName returns the workspace whose package name matches, or nil. Used for
// monorepo-sibling resolution.
func (t *Tree) ByName(name string) *Workspace {
	for _, ws := range t.All {
		if ws.Manifest.Name == name {
			return ws
		}
	}
	return nil
}

// DeclaringWorkspace walks from ws toward the root and returns the nearest
// workspace (including ws itself) declaring pkg, or nil. This implements the
// nearest-ancestor-wins attribution tie-break.
func (t *Tree) DeclaringWorkspace(ws *Workspace, pkg string) *Workspace {
	for w := ws; w != nil; w = w.Parent {
		if w.Manifest.HasDep(pkg) {
			return w
		}
	}
	return nil
}

// isAncestorOf reports whether dir is an ancestor of (or equal to) path.
func isAncestorOf(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || !strings.HasPrefix(rel, "..")
}

// fileExists returns true if path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// dirExists returns true if path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
