// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package plugins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwood-dev/driftwood/internal/manifest"
	"github.com/driftwood-dev/driftwood/internal/plugin"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{"eslint", "expo", "jest", "npm-scripts", "storybook", "typescript", "vitest", "webpack"} {
		assert.NotNil(t, plugin.Get(name), "plugin %s should be registered", name)
	}
}

func depNames(deps []plugin.AttributedDep) []string {
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		out = append(out, d.Name)
	}
	return out
}

func TestESLint_AttributesConfigMentions(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".eslintrc.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"extends": ["eslint-config-airbnb"]}`), 0o644))

	m := &manifest.Manifest{
		Dir: dir,
		DevDependencies: map[string]string{
			"eslint":               "^9.0.0",
			"eslint-config-airbnb": "^19.0.0",
			"unrelated":            "^1.0.0",
		},
	}

	contrib, err := (&ESLint{}).Resolve(plugin.Context{WorkspaceDir: dir, ConfigFiles: []string{cfgPath}, Manifest: m})
	require.NoError(t, err)

	names := depNames(contrib.Deps)
	assert.Contains(t, names, "eslint")
	assert.Contains(t, names, "eslint-config-airbnb")
	assert.NotContains(t, names, "unrelated")
	assert.Equal(t, []string{".eslintrc.json"}, contrib.EntryPatterns)
}

func TestExpo_MainFieldDelegation(t *testing.T) {
	dir := t.TempDir()
	m := &manifest.Manifest{
		Dir:  dir,
		Main: "expo-router/entry",
		Dependencies: map[string]string{
			"expo":        "^50.0.0",
			"expo-router": "^3.0.0",
		},
	}

	contrib, err := (&Expo{}).Resolve(plugin.Context{WorkspaceDir: dir, Manifest: m})
	require.NoError(t, err)

	names := depNames(contrib.Deps)
	assert.Contains(t, names, "expo")
	assert.Contains(t, names, "expo-router")
	for _, d := range contrib.Deps {
		assert.True(t, d.Production)
	}
}

func TestExpo_RelativeMainNotAttributed(t *testing.T) {
	m := &manifest.Manifest{
		Main:         "./index.js",
		Dependencies: map[string]string{"expo": "^50.0.0"},
	}

	contrib, err := (&Expo{}).Resolve(plugin.Context{Manifest: m})
	require.NoError(t, err)
	assert.Equal(t, []string{"expo"}, depNames(contrib.Deps))
}

func TestPackageNameOf(t *testing.T) {
	assert.Equal(t, "expo-router", packageNameOf("expo-router/entry"))
	assert.Equal(t, "@scope/pkg", packageNameOf("@scope/pkg/sub/path"))
	assert.Equal(t, "lodash", packageNameOf("lodash"))
	assert.Equal(t, "", packageNameOf("@scope"))
}

func TestNpmScripts_EntriesAndDeps(t *testing.T) {
	m := &manifest.Manifest{
		Scripts: map[string]string{
			"build": "node scripts/build.mjs",
			"lint":  "eslint src",
		},
		DevDependencies: map[string]string{"eslint": "^9.0.0"},
	}

	contrib, err := (&NpmScripts{}).Resolve(plugin.Context{Manifest: m})
	require.NoError(t, err)

	assert.Contains(t, contrib.EntryPatterns, "scripts/build.mjs")
	assert.Equal(t, []string{"eslint"}, depNames(contrib.Deps))
}

func TestTypeScript_SelfAndConfigMentions(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tsconfig.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"compilerOptions": {"types": ["@types/jest"]}}`), 0o644))

	m := &manifest.Manifest{
		Dir: dir,
		DevDependencies: map[string]string{
			"typescript":  "^5.0.0",
			"@types/jest": "^29.0.0",
		},
	}

	contrib, err := (&TypeScript{}).Resolve(plugin.Context{WorkspaceDir: dir, ConfigFiles: []string{cfgPath}, Manifest: m})
	require.NoError(t, err)

	names := depNames(contrib.Deps)
	assert.Contains(t, names, "typescript")
	assert.Contains(t, names, "@types/jest")
}

func TestDepsMentionedIn_UnreadableFileSkipped(t *testing.T) {
	m := &manifest.Manifest{DevDependencies: map[string]string{"tool": "^1.0.0"}}
	deps := depsMentionedIn(plugin.Context{ConfigFiles: []string{"/nonexistent/config.js"}, Manifest: m}, false)
	assert.Empty(t, deps)
}
