// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullManifest(t *testing.T) {
	data := []byte(`{
		"name": "@acme/web",
		"main": "dist/index.js",
		"module": "dist/index.mjs",
		"types": "dist/index.d.ts",
		"browser": "dist/browser.js",
		"bin": {"acme": "./bin/cli.js"},
		"scripts": {"build": "tsc -p ."},
		"workspaces": ["packages/*"],
		"dependencies": {"react": "^18.0.0"},
		"devDependencies": {"vitest": "^1.0.0"},
		"peerDependencies": {"react-dom": "^18.0.0"},
		"optionalDependencies": {"fsevents": "^2.0.0"}
	}`)

	m, err := Parse("/repo", data)
	require.NoError(t, err)

	assert.Equal(t, "@acme/web", m.Name)
	assert.Equal(t, "/repo", m.Dir)
	assert.Equal(t, "dist/index.js", m.Main)
	assert.Equal(t, "dist/index.mjs", m.Module)
	assert.Equal(t, "dist/index.d.ts", m.Types)
	assert.Equal(t, "dist/browser.js", m.Browser)
	assert.Equal(t, map[string]string{"acme": "./bin/cli.js"}, m.Bin)
	assert.Equal(t, []string{"packages/*"}, m.Workspaces)
	assert.Equal(t, "tsc -p .", m.Scripts["build"])
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse("/repo", []byte(`{"name": `))
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, filepath.Join("/repo", FileName), pe.Path)
}

func TestParse_BrowserMapFormIgnored(t *testing.T) {
	data := []byte(`{"browser": {"./node-thing.js": "./browser-thing.js"}}`)
	m, err := Parse("/repo", data)
	require.NoError(t, err)
	assert.Empty(t, m.Browser)
}

func TestParseBin_StringShorthand(t *testing.T) {
	bin, err := ParseBin(json.RawMessage(`"./cli.js"`), "@acme/tool")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"tool": "./cli.js"}, bin)
}

func TestParseBin_StringShorthandUnscopedName(t *testing.T) {
	bin, err := ParseBin(json.RawMessage(`"./cli.js"`), "tool")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"tool": "./cli.js"}, bin)
}

func TestParseBin_MapForm(t *testing.T) {
	bin, err := ParseBin(json.RawMessage(`{"a": "./a.js", "b": "./b.js"}`), "pkg")
	require.NoError(t, err)
	assert.Len(t, bin, 2)
	assert.Equal(t, "./a.js", bin["a"])
}

func TestParseBin_Invalid(t *testing.T) {
	_, err := ParseBin(json.RawMessage(`[1, 2]`), "pkg")
	assert.Error(t, err)
}

func TestParse_WorkspacesObjectForm(t *testing.T) {
	data := []byte(`{"workspaces": {"packages": ["apps/*", "libs/*"]}}`)
	m, err := Parse("/repo", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"apps/*", "libs/*"}, m.Workspaces)
}

func TestLoad_ReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"name": "disk-pkg"}`), 0o644))

	m, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "disk-pkg", m.Name)
	assert.Equal(t, dir, m.Dir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestDeclaredDeps_BucketsAndOrder(t *testing.T) {
	m := &Manifest{
		Dependencies:    map[string]string{"b": "1", "a": "1"},
		DevDependencies: map[string]string{"c": "1", "a": "2"},
	}

	deps := m.DeclaredDeps()
	require.Len(t, deps, 3)
	assert.Equal(t, DeclaredDep{Name: "a", Bucket: BucketProd}, deps[0])
	assert.Equal(t, DeclaredDep{Name: "b", Bucket: BucketProd}, deps[1])
	assert.Equal(t, DeclaredDep{Name: "c", Bucket: BucketDev}, deps[2])
}

func TestHasDep(t *testing.T) {
	m := &Manifest{
		Dependencies:         map[string]string{"prod": "1"},
		DevDependencies:      map[string]string{"dev": "1"},
		PeerDependencies:     map[string]string{"peer": "1"},
		OptionalDependencies: map[string]string{"opt": "1"},
	}

	assert.True(t, m.HasDep("prod"))
	assert.True(t, m.HasDep("dev"))
	assert.True(t, m.HasDep("peer"))
	assert.True(t, m.HasDep("opt"))
	assert.False(t, m.HasDep("missing"))
}

func TestEntryFields_StableOrder(t *testing.T) {
	m := &Manifest{
		Main:    "index.js",
		Browser: "browser.js",
		Bin:     map[string]string{"z": "z.js", "a": "a.js"},
	}
	assert.Equal(t, []string{"index.js", "browser.js", "a.js", "z.js"}, m.EntryFields())
}

func TestExportTargets_Flattening(t *testing.T) {
	raw := json.RawMessage(`{
		".": {"import": "./dist/index.mjs", "require": "./dist/index.cjs"},
		"./utils": "./dist/utils.js",
		"./package.json": "./package.json"
	}`)

	targets := ExportTargets(raw)
	assert.Equal(t, []string{"./dist/index.cjs", "./dist/index.mjs", "./dist/utils.js", "./package.json"}, targets)
}

func TestExportTargets_Empty(t *testing.T) {
	assert.Nil(t, ExportTargets(nil))
}

func TestResolveExports_BareString(t *testing.T) {
	target, ok := ResolveExports(json.RawMessage(`"./index.js"`), ".", false)
	require.True(t, ok)
	assert.Equal(t, "./index.js", target)

	_, ok = ResolveExports(json.RawMessage(`"./index.js"`), "./sub", false)
	assert.False(t, ok)
}

func TestResolveExports_ConditionOrder(t *testing.T) {
	raw := json.RawMessage(`{"require": "./index.cjs", "import": "./index.mjs", "default": "./index.js"}`)
	target, ok := ResolveExports(raw, ".", false)
	require.True(t, ok)
	assert.Equal(t, "./index.mjs", target)
}

func TestResolveExports_TypesConditionFirstForTypeOnly(t *testing.T) {
	raw := json.RawMessage(`{"types": "./index.d.ts", "import": "./index.mjs"}`)

	target, ok := ResolveExports(raw, ".", true)
	require.True(t, ok)
	assert.Equal(t, "./index.d.ts", target)

	target, ok = ResolveExports(raw, ".", false)
	require.True(t, ok)
	assert.Equal(t, "./index.mjs", target)
}

func TestResolveExports_SubpathPattern(t *testing.T) {
	raw := json.RawMessage(`{"./lib/*": "./dist/lib/*.js"}`)
	target, ok := ResolveExports(raw, "./lib/math", false)
	require.True(t, ok)
	assert.Equal(t, "./dist/lib/math.js", target)
}

func TestResolveExports_LongestPatternWins(t *testing.T) {
	raw := json.RawMessage(`{"./*": "./dist/*.js", "./icons/*": "./dist/icons/*.svg.js"}`)
	target, ok := ResolveExports(raw, "./icons/arrow", false)
	require.True(t, ok)
	assert.Equal(t, "./dist/icons/arrow.svg.js", target)
}

func TestResolveExports_ArrayFallback(t *testing.T) {
	raw := json.RawMessage(`{".": [{"unknown-condition": "./never.js"}, "./fallback.js"]}`)
	target, ok := ResolveExports(raw, ".", false)
	require.True(t, ok)
	assert.Equal(t, "./fallback.js", target)
}

func TestResolveExports_NoMatch(t *testing.T) {
	raw := json.RawMessage(`{"./a": "./a.js"}`)
	_, ok := ResolveExports(raw, "./b", false)
	assert.False(t, ok)
}
