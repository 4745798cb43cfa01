// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package resolve maps import specifiers to internal files or external
// package names.
package resolve

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/driftwood-dev/driftwood/internal/manifest"
	"github.com/driftwood-dev/driftwood/internal/tsconfig"
	"github.com/driftwood-dev/driftwood/internal/workspace"
)

// Kind classifies a resolution result.
type Kind int

const (
	// Unresolved means no resolution step matched.
	Unresolved Kind = iota
	// Internal means the specifier names a file inside the repository.
	Internal
	// External means the specifier names an installed or declared package.
	External
)

// Result is the outcome of resolving one specifier.
type Result struct {
	Kind    Kind
	Path    string // Absolute file path when Kind == Internal.
	Package string // Package name when Kind == External.
	Subpath string // Package subpath ("" for the bare package).
	Builtin bool   // True for Node built-in modules.
}

// extensions is the probe order for extensionless specifiers.
var extensions = []string{
	".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".mts", ".cts", ".d.ts", ".json",
}

// tsTwins maps emitted-JS extensions to the TS sources that produce them, so
// "./util.js" finds util.ts the way the TS resolver does.
var tsTwins = map[string][]string{
	".js":  {".ts", ".tsx"},
	".mjs": {".mts"},
	".cjs": {".cts"},
	".jsx": {".tsx"},
}

const cacheSize = 16384

// Resolver resolves specifiers against a workspace tree. Resolution results
// are cached; entries are write-once.
type Resolver struct {
	tree  *workspace.Tree
	tsFor func(ws *workspace.Workspace) *tsconfig.Config
	cache *lru.Cache[string, Result]
}

// New builds a Resolver. tsFor supplies the TS project configuration of a
// workspace and may return nil.
func New(tree *workspace.Tree, tsFor func(ws *workspace.Workspace) *tsconfig.Config) *Resolver {
	cache, _ := lru.New[string, Result](cacheSize)
	if tsFor == nil {
		tsFor = func(*workspace.Workspace) *tsconfig.Config { return nil }
	}
	return &Resolver{tree: tree, tsFor: tsFor, cache: cache}
}

// Resolve maps spec, as written in fromFile, to a Result. It fails soft:
// anything that does not resolve comes back with Kind == Unresolved.
func (r *Resolver) Resolve(spec, fromFile string, typeOnly bool) Result {
	fromDir := filepath.Dir(fromFile)
	key := spec + "\x00" + fromDir
	if typeOnly {
		key += "\x00t"
	}
	if res, ok := r.cache.Get(key); ok {
		return res
	}
	res := r.resolve(spec, fromFile, fromDir, typeOnly)
	r.cache.Add(key, res)
	return res
}

func (r *Resolver) resolve(spec, fromFile, fromDir string, typeOnly bool) Result {
	if spec == "" {
		return Result{Kind: Unresolved}
	}

	// Step 1: relative and absolute paths.
	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || strings.HasPrefix(spec, "/") {
		base := spec
		if !filepath.IsAbs(base) {
			base = filepath.Join(fromDir, spec)
		}
		if path, ok := probeFile(base); ok {
			return Result{Kind: Internal, Path: path}
		}
		return Result{Kind: Unresolved}
	}

	ws := r.tree.OwnerOf(fromFile)

	// Step 2: tsconfig path mappings of the referring workspace.
	if ws != nil {
		if cfg := r.tsFor(ws); cfg != nil {
			for _, candidate := range cfg.MapSpecifier(spec) {
				if path, ok := probeFile(candidate); ok {
					return Result{Kind: Internal, Path: path}
				}
			}
		}
	}

	pkg, subpath := SplitPackage(spec)
	if pkg == "" {
		return Result{Kind: Unresolved}
	}

	// Step 3: monorepo sibling lookup.
	if sibling := r.tree.ByName(pkg); sibling != nil {
		if path, ok := r.resolveInWorkspace(sibling, subpath, typeOnly); ok {
			return Result{Kind: Internal, Path: path}
		}
		return Result{Kind: External, Package: pkg, Subpath: subpath}
	}

	// Step 4: node_modules ascent from the referring directory.
	if found, ok := r.resolveNodeModules(fromDir, pkg, subpath, typeOnly); ok {
		return found
	}

	// Step 5: Node built-ins are external by definition.
	if isBuiltin(pkg) {
		return Result{Kind: External, Package: strings.TrimPrefix(pkg, "node:"), Subpath: subpath, Builtin: true}
	}

	// Step 6: a declared dep anywhere up the workspace chain makes the
	// specifier external even when not installed. Longest declared name wins.
	if ws != nil {
		if match := r.longestDeclaredPrefix(ws, spec); match != "" {
			return Result{Kind: External, Package: match, Subpath: strings.TrimPrefix(strings.TrimPrefix(spec, match), "/")}
		}
	}

	return Result{Kind: Unresolved}
}

// probeFile probes a path the way the TS resolver does: exact hit, emitted-JS
// twins, extension append, then index files.
func probeFile(base string) (string, bool) {
	if regularFile(base) {
		return base, true
	}

	ext := filepath.Ext(base)
	if twins, ok := tsTwins[ext]; ok {
		stem := strings.TrimSuffix(base, ext)
		for _, twin := range twins {
			if regularFile(stem + twin) {
				return stem + twin, true
			}
		}
	}

	for _, e := range extensions {
		if regularFile(base + e) {
			return base + e, true
		}
	}

	if dirExists(base) {
		for _, e := range extensions {
			idx := filepath.Join(base, "index"+e)
			if regularFile(idx) {
				return idx, true
			}
		}
	}
	return "", false
}

// resolveInWorkspace resolves a subpath inside a sibling workspace: its
// exports map first, then manifest entry fields, then the subpath as a file.
func (r *Resolver) resolveInWorkspace(ws *workspace.Workspace, subpath string, typeOnly bool) (string, bool) {
	m := ws.Manifest

	expSub := "."
	if subpath != "" {
		expSub = "./" + subpath
	}
	if target, ok := manifest.ResolveExports(m.Exports, expSub, typeOnly); ok {
		if path, ok := probeFile(filepath.Join(ws.Path, target)); ok {
			return path, true
		}
	}

	if subpath == "" {
		for _, field := range m.EntryFields() {
			if path, ok := probeFile(filepath.Join(ws.Path, field)); ok {
				return path, true
			}
		}
		return probeFile(filepath.Join(ws.Path, "index"))
	}
	return probeFile(filepath.Join(ws.Path, subpath))
}

// resolveNodeModules ascends node_modules directories looking for pkg. A hit
// validates the subpath against the package's exports map but classifies as
// External either way, since node_modules files are never traversed.
func (r *Resolver) resolveNodeModules(fromDir, pkg, subpath string, typeOnly bool) (Result, bool) {
	for dir := fromDir; ; dir = filepath.Dir(dir) {
		pkgDir := filepath.Join(dir, "node_modules", pkg)
		if dirExists(pkgDir) {
			res := Result{Kind: External, Package: pkg, Subpath: subpath}
			if raw := readExportsField(pkgDir); raw != nil && subpath != "" {
				// Exports maps constrain visible subpaths; a miss still
				// attributes the package.
				_, _ = manifest.ResolveExports(raw, "./"+subpath, typeOnly)
			}
			return res, true
		}
		if filepath.Dir(dir) == dir {
			return Result{}, false
		}
	}
}

// longestDeclaredPrefix finds the longest declared dependency name, in ws or
// any ancestor, that prefixes spec at a path boundary.
func (r *Resolver) longestDeclaredPrefix(ws *workspace.Workspace, spec string) string {
	var best string
	for w := ws; w != nil; w = w.Parent {
		for _, name := range w.Attribution.Names() {
			if len(name) <= len(best) {
				continue
			}
			if spec == name || strings.HasPrefix(spec, name+"/") {
				best = name
			}
		}
	}
	return best
}

// SplitPackage splits a bare specifier into package name and subpath.
func SplitPackage(spec string) (string, string) {
	parts := strings.SplitN(spec, "/", 3)
	if strings.HasPrefix(spec, "@") {
		if len(parts) < 2 {
			return "", ""
		}
		pkg := parts[0] + "/" + parts[1]
		if len(parts) == 3 {
			return pkg, parts[2]
		}
		return pkg, ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], "/")
}

// readExportsField reads just the exports field of an installed package.
func readExportsField(pkgDir string) json.RawMessage {
	data, err := os.ReadFile(filepath.Join(pkgDir, manifest.FileName)) //nolint:gosec // trusted path
	if err != nil {
		return nil
	}
	var raw struct {
		Exports json.RawMessage `json:"exports"`
	}
	if json.Unmarshal(data, &raw) != nil {
		return nil
	}
	return raw.Exports
}

func regularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
