// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package traverse

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwood-dev/driftwood/internal/entry"
	"github.com/driftwood-dev/driftwood/internal/graph"
	"github.com/driftwood-dev/driftwood/internal/parse"
	"github.com/driftwood-dev/driftwood/internal/resolve"
	"github.com/driftwood-dev/driftwood/internal/workspace"
)

// fixture writes files under a temp dir and builds tree, engine, and an entry
// set rooted at the given entries.
func fixture(t *testing.T, files map[string]string, entries ...string) (*workspace.Tree, *Engine, map[string]*entry.Set) {
	t.Helper()
	root := t.TempDir()
	if _, ok := files["package.json"]; !ok {
		files["package.json"] = `{"name": "fixture"}`
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	tree, err := workspace.Build(root)
	require.NoError(t, err)

	engine := New(tree, resolve.New(tree, nil), parse.NewParser(), Options{})

	set := &entry.Set{Dir: root}
	for _, e := range entries {
		set.Entries = append(set.Entries, filepath.Join(root, filepath.FromSlash(e)))
	}
	return tree, engine, map[string]*entry.Set{root: set}
}

func TestRun_ReachabilityChain(t *testing.T) {
	tree, engine, sets := fixture(t, map[string]string{
		"index.ts":  `import { helper } from "./util";`,
		"util.ts":   `export function helper() {}`,
		"orphan.ts": `export const lonely = 1;`,
	}, "index.ts")

	res, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)

	utilID, ok := res.Graph.Lookup(filepath.Join(tree.Root, "util.ts"))
	require.True(t, ok)
	assert.True(t, res.Graph.Reachable(utilID, graph.ValueChannel))

	_, ok = res.Graph.Lookup(filepath.Join(tree.Root, "orphan.ts"))
	assert.False(t, ok, "unreferenced files are never interned")

	assert.True(t, res.EntryFiles[filepath.Join(tree.Root, "index.ts")])
}

func TestRun_TypeOnlyChannel(t *testing.T) {
	tree, engine, sets := fixture(t, map[string]string{
		"index.ts": `import type { Shape } from "./types";`,
		"types.ts": `export interface Shape { x: number }`,
	}, "index.ts")

	res, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)

	id, ok := res.Graph.Lookup(filepath.Join(tree.Root, "types.ts"))
	require.True(t, ok)
	assert.True(t, res.Graph.Reachable(id, graph.TypeChannel))
	assert.False(t, res.Graph.Reachable(id, graph.ValueChannel))
}

func TestRun_ExportRefsMarked(t *testing.T) {
	tree, engine, sets := fixture(t, map[string]string{
		"index.ts": `import { used } from "./lib";`,
		"lib.ts":   "export function used() {}\nexport function idle() {}",
	}, "index.ts")

	res, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)

	id, ok := res.Graph.Lookup(filepath.Join(tree.Root, "lib.ts"))
	require.True(t, ok)
	assert.True(t, res.Graph.Referenced(id, "used", true))
	assert.False(t, res.Graph.Referenced(id, "idle", true))
}

func TestRun_StarReExportMarksAll(t *testing.T) {
	tree, engine, sets := fixture(t, map[string]string{
		"index.ts": `export * from "./lib";`,
		"lib.ts":   `export const a = 1;`,
	}, "index.ts")

	res, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)

	id, ok := res.Graph.Lookup(filepath.Join(tree.Root, "lib.ts"))
	require.True(t, ok)
	assert.True(t, res.Graph.AllRefsMarked(id))
}

func TestRun_ExternalAttribution(t *testing.T) {
	tree, engine, sets := fixture(t, map[string]string{
		"package.json":                     `{"name": "fixture", "dependencies": {"lodash": "^4.0.0"}}`,
		"node_modules/lodash/package.json": `{"name": "lodash"}`,
		"index.ts":                         `import merge from "lodash";`,
	}, "index.ts")

	res, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)

	require.Len(t, res.Externals, 1)
	ext := res.Externals[0]
	assert.Equal(t, "lodash", ext.Package)
	assert.True(t, ext.Declared)
	assert.False(t, ext.Builtin)
	assert.Equal(t, tree.Root, ext.Workspace.Path)
}

func TestRun_BuiltinNotAttributed(t *testing.T) {
	_, engine, sets := fixture(t, map[string]string{
		"index.ts": `import fs from "node:fs";`,
	}, "index.ts")

	res, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)

	require.Len(t, res.Externals, 1)
	assert.True(t, res.Externals[0].Builtin)
	assert.False(t, res.Externals[0].Declared)
}

func TestRun_UnresolvedImports(t *testing.T) {
	tree, engine, sets := fixture(t, map[string]string{
		"index.ts": "import a from \"./missing\";\nimport b from \"no-such-pkg\";",
	}, "index.ts")

	res, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)

	require.Len(t, res.Unresolved, 2)
	byspec := make(map[string]UnresolvedImport)
	for _, u := range res.Unresolved {
		byspec[u.Spec] = u
	}
	assert.False(t, byspec["./missing"].Bare)
	assert.True(t, byspec["no-such-pkg"].Bare)
	assert.Equal(t, filepath.Join(tree.Root, "index.ts"), byspec["./missing"].File)
}

func TestRun_DynamicComputedSpecifierDiagnostic(t *testing.T) {
	_, engine, sets := fixture(t, map[string]string{
		"index.ts": "const name = \"en\";\nimport(\"./locales/\" + name);",
	}, "index.ts")

	res, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)

	require.NotEmpty(t, res.Diagnostics)
	assert.Contains(t, res.Diagnostics[0].Message, "computed specifier")
	assert.Equal(t, uint32(2), res.Diagnostics[0].Line)
}

func TestRun_MemberUsesPropagated(t *testing.T) {
	_, engine, sets := fixture(t, map[string]string{
		"index.ts": "const svc = getService();\nsvc.start();",
	}, "index.ts")

	res, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)
	assert.True(t, res.MemberUses["start"])
}

func TestRun_BrokenFileAdmittedWithDiagnostic(t *testing.T) {
	tree, engine, sets := fixture(t, map[string]string{
		"index.ts":  `import "./bad";`,
		"bad.ts":    `export const = = {`,
	}, "index.ts")

	res, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)

	id, ok := res.Graph.Lookup(filepath.Join(tree.Root, "bad.ts"))
	require.True(t, ok)
	assert.True(t, res.Graph.ReachableInAny(id))
	assert.NotEmpty(t, res.Diagnostics)
}

func TestRun_SiblingWorkspaceDepAttributed(t *testing.T) {
	tree, engine, _ := fixture(t, map[string]string{
		"package.json":              `{"name": "root", "workspaces": ["packages/*"]}`,
		"packages/app/package.json": `{"name": "@mono/app", "dependencies": {"@mono/lib": "workspace:*"}}`,
		"packages/app/index.ts":     `import { shared } from "@mono/lib";`,
		"packages/lib/package.json": `{"name": "@mono/lib", "main": "./index.ts"}`,
		"packages/lib/index.ts":     `export function shared() {}`,
	})

	appDir := filepath.Join(tree.Root, "packages", "app")
	sets := map[string]*entry.Set{
		appDir: {Dir: appDir, Entries: []string{filepath.Join(appDir, "index.ts")}},
	}
	_, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)

	app := tree.ByName("@mono/app")
	require.NotNil(t, app)
	assert.True(t, app.Attribution.Used("@mono/lib"))
}

func TestRun_CancelledContext(t *testing.T) {
	_, engine, sets := fixture(t, map[string]string{
		"index.ts": `export const a = 1;`,
	}, "index.ts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.Run(ctx, sets)
	assert.Error(t, err)
}

func TestRun_DiamondVisitsOnce(t *testing.T) {
	tree, engine, sets := fixture(t, map[string]string{
		"index.ts":  "import \"./a\";\nimport \"./b\";",
		"a.ts":      `import { shared } from "./shared";`,
		"b.ts":      `import { shared } from "./shared";`,
		"shared.ts": `export const shared = 1;`,
	}, "index.ts")

	res, err := engine.Run(context.Background(), sets)
	require.NoError(t, err)

	id, ok := res.Graph.Lookup(filepath.Join(tree.Root, "shared.ts"))
	require.True(t, ok)

	aID, _ := res.Graph.Lookup(filepath.Join(tree.Root, "a.ts"))
	bID, _ := res.Graph.Lookup(filepath.Join(tree.Root, "b.ts"))
	assert.ElementsMatch(t, []uint32{aID, bID}, res.Graph.ImportersOf(id))
}
