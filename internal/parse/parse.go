// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package parse is the source parser facade: one call per file yielding a
// tree-sitter syntax tree, the source bytes, and JSDoc comment ranges.
package parse

import (
	"context"
	"encoding/hex"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/zeebo/blake3"

	"github.com/driftwood-dev/driftwood/internal/testable"
)

// FS is the file system implementation used by this package. Tests may swap
// in a mock.
var FS testable.FileSystem = testable.OsFileSystem{}

// File is one parsed source file.
type File struct {
	Path     string
	Source   []byte
	Tree     *sitter.Tree // nil when parsing failed outright.
	Comments []Comment

	// Broken marks files whose tree contains syntax errors. Broken files are
	// admitted with zero imports and exports so one bad file cannot cascade.
	Broken bool

	// Diagnostics holds parse problems in human-readable form.
	Diagnostics []string
}

// Comment is a comment node with its byte span. JSDoc blocks start with /**.
type Comment struct {
	Start uint32
	End   uint32
	Text  string
}

// IsJSDoc reports whether the comment is a JSDoc block.
func (c Comment) IsJSDoc() bool { return strings.HasPrefix(c.Text, "/**") }

// Compiler converts a non-standard source file (.vue, .svelte, .mdx, .astro)
// into plain JS/TS before parsing.
type Compiler func(path string, source []byte) ([]byte, error)

var (
	compilerMu sync.RWMutex
	compilers  = make(map[string]Compiler)
)

// RegisterCompiler installs a compiler for a file extension (".vue"). The
// last registration for an extension wins.
func RegisterCompiler(ext string, c Compiler) {
	compilerMu.Lock()
	defer compilerMu.Unlock()
	compilers[ext] = c
}

func compilerFor(ext string) Compiler {
	compilerMu.RLock()
	defer compilerMu.RUnlock()
	return compilers[ext]
}

// languageFor picks the grammar for a file. The typescript grammar covers
// plain TS; tsx covers TSX; the javascript grammar handles JS and JSX.
func languageFor(path string) *sitter.Language {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parser parses files with a content-addressed cache. Cache insertion is
// concurrency-safe; entries are write-once.
type Parser struct {
	mu    sync.Mutex
	cache map[string]*File
}

// NewParser creates an empty Parser.
func NewParser() *Parser {
	return &Parser{cache: make(map[string]*File)}
}

// Parse reads and parses path. I/O errors propagate; syntax errors demote to
// per-file diagnostics.
func (p *Parser) Parse(ctx context.Context, path string) (*File, error) {
	source, err := FS.ReadFile(path)
	if err != nil {
		return nil, err
	}

	sum := blake3.Sum256(source)
	key := path + "\x00" + hex.EncodeToString(sum[:])

	p.mu.Lock()
	cached, ok := p.cache[key]
	p.mu.Unlock()
	if ok {
		return cached, nil
	}

	f := parseSource(ctx, path, source)

	p.mu.Lock()
	if prior, ok := p.cache[key]; ok {
		f = prior
	} else {
		p.cache[key] = f
	}
	p.mu.Unlock()
	return f, nil
}

// parseSource runs the compiler hook if one is registered for the extension,
// then parses with a fresh tree-sitter parser. Parsers are not thread-safe,
// so each call gets its own.
func parseSource(ctx context.Context, path string, source []byte) *File {
	f := &File{Path: path, Source: source}

	ext := strings.ToLower(filepath.Ext(path))
	if c := compilerFor(ext); c != nil {
		plain, err := c(path, source)
		if err != nil {
			f.Broken = true
			f.Diagnostics = append(f.Diagnostics, "compile: "+err.Error())
			return f
		}
		f.Source = plain
	}

	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(path))
	tree, err := parser.ParseCtx(ctx, nil, f.Source)
	if err != nil {
		f.Broken = true
		f.Diagnostics = append(f.Diagnostics, "parse: "+err.Error())
		return f
	}
	f.Tree = tree

	if tree.RootNode().HasError() {
		f.Broken = true
		f.Diagnostics = append(f.Diagnostics, "parse: syntax errors")
	}

	f.Comments = collectComments(tree.RootNode(), f.Source)
	return f
}

// collectComments walks the tree for comment nodes.
func collectComments(root *sitter.Node, source []byte) []Comment {
	var out []Comment
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "comment" {
			out = append(out, Comment{
				Start: n.StartByte(),
				End:   n.EndByte(),
				Text:  n.Content(source),
			})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return out
}
