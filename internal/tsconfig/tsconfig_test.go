// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package tsconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_BaseURLAndPaths(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, `{
		"compilerOptions": {
			"baseUrl": "./src",
			"paths": {"@app/*": ["app/*"]}
		}
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, filepath.Join(dir, "src"), cfg.BaseURL)
	assert.Equal(t, []string{"app/*"}, cfg.Paths["@app/*"])
}

func TestLoad_JSONCCommentsAndTrailingCommas(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, `{
		// line comment
		"compilerOptions": {
			/* block comment */
			"baseUrl": ".",
			"paths": {
				"~/*": ["src/*"],
			},
		},
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, dir, cfg.BaseURL)
}

func TestLoad_ExtendsChain(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "tsconfig.base.json", `{
		"compilerOptions": {"baseUrl": ".", "paths": {"@base/*": ["base/*"]}}
	}`)
	writeConfig(t, dir, FileName, `{
		"extends": "./tsconfig.base",
		"compilerOptions": {"paths": {"@app/*": ["app/*"]}}
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	// The extending config's paths replace the base's; baseUrl is inherited.
	assert.Equal(t, dir, cfg.BaseURL)
	assert.Contains(t, cfg.Paths, "@app/*")
	assert.NotContains(t, cfg.Paths, "@base/*")
}

func TestLoad_ExtendsCycleTerminates(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, `{"extends": "./tsconfig.json", "compilerOptions": {"baseUrl": "."}}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, dir, cfg.BaseURL)
}

func TestLoad_PathsWithoutBaseURLDefaultsToDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, `{"compilerOptions": {"paths": {"~/*": ["src/*"]}}}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, dir, cfg.BaseURL)
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, `{"compilerOptions": `)

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestMapSpecifier_ExactAlias(t *testing.T) {
	cfg := &Config{BaseURL: "/repo/src", Paths: map[string][]string{"app": {"app/index.ts"}}}

	got := cfg.MapSpecifier("app")
	assert.Equal(t, []string{filepath.Join("/repo/src", "app/index.ts")}, got)
}

func TestMapSpecifier_WildcardSubstitution(t *testing.T) {
	cfg := &Config{BaseURL: "/repo", Paths: map[string][]string{"@app/*": {"src/app/*"}}}

	got := cfg.MapSpecifier("@app/util/math")
	assert.Equal(t, []string{filepath.Join("/repo", "src/app/util/math")}, got)
}

func TestMapSpecifier_LongestPrefixWins(t *testing.T) {
	cfg := &Config{BaseURL: "/repo", Paths: map[string][]string{
		"@app/*":       {"src/*"},
		"@app/icons/*": {"assets/icons/*"},
	}}

	got := cfg.MapSpecifier("@app/icons/arrow")
	assert.Equal(t, []string{filepath.Join("/repo", "assets/icons/arrow")}, got)
}

func TestMapSpecifier_NoMatch(t *testing.T) {
	cfg := &Config{BaseURL: "/repo", Paths: map[string][]string{"@app/*": {"src/*"}}}
	assert.Nil(t, cfg.MapSpecifier("lodash"))
}

func TestMapSpecifier_NilConfig(t *testing.T) {
	var cfg *Config
	assert.Nil(t, cfg.MapSpecifier("anything"))
}
