// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package parse

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_TypeScript(t *testing.T) {
	path := writeSource(t, "app.ts", `import { x } from "./dep"; export const y: number = x;`)

	p := NewParser()
	f, err := p.Parse(context.Background(), path)
	require.NoError(t, err)

	assert.False(t, f.Broken)
	require.NotNil(t, f.Tree)
	assert.Equal(t, "program", f.Tree.RootNode().Type())
}

func TestParse_TSX(t *testing.T) {
	path := writeSource(t, "view.tsx", `export const View = () => <div>hello</div>;`)

	p := NewParser()
	f, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, f.Broken)
}

func TestParse_JavaScript(t *testing.T) {
	path := writeSource(t, "lib.js", `module.exports = { a: 1 };`)

	p := NewParser()
	f, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, f.Broken)
}

func TestParse_SyntaxErrorDemotesToBroken(t *testing.T) {
	path := writeSource(t, "bad.ts", `export const = = {`)

	p := NewParser()
	f, err := p.Parse(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, f.Broken)
	assert.NotEmpty(t, f.Diagnostics)
}

func TestParse_MissingFilePropagatesError(t *testing.T) {
	p := NewParser()
	_, err := p.Parse(context.Background(), filepath.Join(t.TempDir(), "missing.ts"))
	assert.Error(t, err)
}

func TestParse_CacheReturnsSameFile(t *testing.T) {
	path := writeSource(t, "app.ts", `export const a = 1;`)

	p := NewParser()
	first, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	second, err := p.Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestParse_CacheKeyedByContent(t *testing.T) {
	path := writeSource(t, "app.ts", `export const a = 1;`)

	p := NewParser()
	first, err := p.Parse(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`export const b = 2;`), 0o644))
	second, err := p.Parse(context.Background(), path)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
}

func TestParse_CollectsJSDocComments(t *testing.T) {
	path := writeSource(t, "doc.ts", `/** @public */
export const a = 1;
// plain comment
export const b = 2;`)

	p := NewParser()
	f, err := p.Parse(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, f.Comments, 2)
	assert.True(t, f.Comments[0].IsJSDoc())
	assert.False(t, f.Comments[1].IsJSDoc())
}

func TestRegisterCompiler_TransformsBeforeParse(t *testing.T) {
	RegisterCompiler(".fake", func(path string, source []byte) ([]byte, error) {
		return []byte("export const compiled = 1;"), nil
	})
	defer RegisterCompiler(".fake", nil)

	path := writeSource(t, "widget.fake", "not javascript at all %%%")

	p := NewParser()
	f, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, f.Broken)
}

func TestRegisterCompiler_ErrorMarksBroken(t *testing.T) {
	RegisterCompiler(".fail", func(path string, source []byte) ([]byte, error) {
		return nil, errors.New("template error")
	})
	defer RegisterCompiler(".fail", nil)

	path := writeSource(t, "widget.fail", "whatever")

	p := NewParser()
	f, err := p.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, f.Broken)
	require.NotEmpty(t, f.Diagnostics)
	assert.Contains(t, f.Diagnostics[0], "template error")
}
