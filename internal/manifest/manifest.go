// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package manifest loads and models package.json files.
package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/driftwood-dev/driftwood/internal/testable"
)

// FileName is the manifest file name probed in every workspace directory.
const FileName = "package.json"

// FS is the file system implementation used by this package. Tests may swap
// in a mock.
var FS testable.FileSystem = testable.OsFileSystem{}

// Bucket identifies which declaration list a dependency appears in.
type Bucket string

const (
	BucketProd     Bucket = "dependencies"
	BucketDev      Bucket = "devDependencies"
	BucketPeer     Bucket = "peerDependencies"
	BucketOptional Bucket = "optionalDependencies"
)

// Manifest is the parsed subset of a package.json that the analyzer consumes.
type Manifest struct {
	Dir  string // Absolute directory containing the manifest.
	Name string

	Main    string
	Module  string
	Types   string
	Browser string

	// Bin is the normalized binary map: command name to relative script path.
	// The shorthand string form is keyed by the package name.
	Bin map[string]string

	// Exports is the raw exports field; nil when absent. Interpreted lazily by
	// the resolver and the entry resolver.
	Exports json.RawMessage

	// Scripts maps script name to shell command line.
	Scripts map[string]string

	// Workspaces holds the workspace glob patterns (array or object form).
	Workspaces []string

	Dependencies         map[string]string
	DevDependencies      map[string]string
	PeerDependencies     map[string]string
	OptionalDependencies map[string]string
}

// ParseError indicates a package.json that could not be read or decoded.
// A broken manifest aborts the run.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing manifest %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// rawManifest mirrors the on-disk JSON shape before normalization.
type rawManifest struct {
	Name                 string            `json:"name"`
	Main                 string            `json:"main"`
	Module               string            `json:"module"`
	Types                string            `json:"types"`
	Browser              json.RawMessage   `json:"browser"`
	Bin                  json.RawMessage   `json:"bin"`
	Exports              json.RawMessage   `json:"exports"`
	Scripts              map[string]string `json:"scripts"`
	Workspaces           json.RawMessage   `json:"workspaces"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// Load reads and parses the package.json inside dir. It returns a *ParseError
// on malformed JSON.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := FS.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return Parse(dir, data)
}

// Parse decodes manifest JSON that was read from dir/package.json.
func Parse(dir string, data []byte) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	m := &Manifest{
		Dir:                  dir,
		Name:                 raw.Name,
		Main:                 raw.Main,
		Module:               raw.Module,
		Types:                raw.Types,
		Exports:              raw.Exports,
		Scripts:              raw.Scripts,
		Dependencies:         raw.Dependencies,
		DevDependencies:      raw.DevDependencies,
		PeerDependencies:     raw.PeerDependencies,
		OptionalDependencies: raw.OptionalDependencies,
	}

	// Browser can be a string or a replacement map; only the string form
	// contributes an entry file.
	if len(raw.Browser) > 0 {
		var s string
		if err := json.Unmarshal(raw.Browser, &s); err == nil {
			m.Browser = s
		}
	}

	bin, err := ParseBin(raw.Bin, raw.Name)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	m.Bin = bin

	ws, err := parseWorkspacesField(raw.Workspaces)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	m.Workspaces = ws

	return m, nil
}

// ParseBin handles both the map form {"cmd": "./cli.js"} and the string
// shorthand "./cli.js", which binds the package's unscoped name.
func ParseBin(raw json.RawMessage, pkgName string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		name := pkgName
		if idx := lastSlash(name); idx >= 0 {
			name = name[idx+1:]
		}
		if name == "" {
			return nil, nil
		}
		return map[string]string{name: s}, nil
	}

	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("bin field: %w", err)
	}
	return m, nil
}

// parseWorkspacesField handles both the array form ["packages/*"] and the
// object form {"packages": ["packages/*"]}.
func parseWorkspacesField(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr, nil
	}

	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("workspaces field: %w", err)
	}
	return obj.Packages, nil
}

// DeclaredDeps returns every declared dependency name across all four buckets,
// sorted, with the bucket each name appears in. A name declared in multiple
// buckets keeps the first bucket in prod > dev > peer > optional order.
func (m *Manifest) DeclaredDeps() []DeclaredDep {
	seen := make(map[string]bool)
	var out []DeclaredDep

	add := func(deps map[string]string, bucket Bucket) {
		names := make([]string, 0, len(deps))
		for name := range deps {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, DeclaredDep{Name: name, Bucket: bucket})
		}
	}

	add(m.Dependencies, BucketProd)
	add(m.DevDependencies, BucketDev)
	add(m.PeerDependencies, BucketPeer)
	add(m.OptionalDependencies, BucketOptional)

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DeclaredDep pairs a dependency name with the bucket it was declared in.
type DeclaredDep struct {
	Name   string
	Bucket Bucket
}

// HasDep reports whether name is declared in any bucket.
func (m *Manifest) HasDep(name string) bool {
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	if _, ok := m.DevDependencies[name]; ok {
		return true
	}
	if _, ok := m.PeerDependencies[name]; ok {
		return true
	}
	_, ok := m.OptionalDependencies[name]
	return ok
}

// EntryFields returns the manifest fields that name entry files, in a stable
// order: main, module, browser, types, then bin targets sorted by command.
func (m *Manifest) EntryFields() []string {
	var out []string
	for _, f := range []string{m.Main, m.Module, m.Browser, m.Types} {
		if f != "" {
			out = append(out, f)
		}
	}
	cmds := make([]string, 0, len(m.Bin))
	for cmd := range m.Bin {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	for _, cmd := range cmds {
		if m.Bin[cmd] != "" {
			out = append(out, m.Bin[cmd])
		}
	}
	return out
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}
