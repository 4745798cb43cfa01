// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package entry expands entry, project, and ignore patterns per workspace
// into concrete file sets.
package entry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/driftwood-dev/driftwood/internal/issue"
	"github.com/driftwood-dev/driftwood/internal/manifest"
	"github.com/driftwood-dev/driftwood/internal/workspace"
)

// DefaultEntryPatterns seed reachability when the user configures nothing.
var DefaultEntryPatterns = []string{
	"{index,main,cli}.{js,mjs,cjs,jsx,ts,tsx,mts,cts}",
	"src/{index,main,cli}.{js,mjs,cjs,jsx,ts,tsx,mts,cts}",
}

// DefaultProjectPatterns define the file universe owned by a workspace.
var DefaultProjectPatterns = []string{
	"**/*.{js,mjs,cjs,jsx,ts,tsx,mts,cts}",
}

// Patterns carries the three pattern sets for one workspace, already merged
// from defaults, user configuration, and plugin contributions, in that order.
type Patterns struct {
	Entry   []string
	Project []string
	Ignore  []string
}

// Set is the expanded result: concrete absolute file paths. Entry is always a
// subset of Project.
type Set struct {
	Dir     string   // Workspace directory the patterns were anchored to.
	Entries []string // Sorted absolute paths.
	Project []string // Sorted absolute paths.

	ignoreMatcher *ignore.GitIgnore
}

// IsIgnored reports whether the absolute path is excluded from reporting.
// Ignored files may still be reachable.
func (s *Set) IsIgnored(path string) bool {
	if s.ignoreMatcher == nil {
		return false
	}
	rel, err := filepath.Rel(s.Dir, path)
	if err != nil {
		return false
	}
	return s.ignoreMatcher.MatchesPath(filepath.ToSlash(rel))
}

// Resolve walks ws's directory and expands pats into the entry and project
// sets. excludeDirs lists child workspace roots whose files belong to their
// own workspace. Files named by entry patterns but outside the project set
// are added to the project set. Ignore patterns apply last and only to
// reporting, never to set membership.
func Resolve(ws *workspace.Workspace, pats Patterns, excludeDirs []string) (*Set, []issue.Diagnostic, error) {
	var diags []issue.Diagnostic

	files, err := walkFiles(ws.Path, excludeDirs)
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", ws.Path, err)
	}

	project := applyPatterns(ws.Path, files, pats.Project)
	entries := applyPatterns(ws.Path, files, pats.Entry)

	// Manifest fields name concrete files rather than globs. A field that
	// points at a missing file (often build output) demotes to a diagnostic.
	for _, field := range manifestEntryFiles(ws.Manifest) {
		abs := filepath.Join(ws.Path, field)
		if !regularFile(abs) {
			diags = append(diags, issue.Diagnostic{
				File:    abs,
				Message: fmt.Sprintf("manifest entry %q does not exist", field),
			})
			continue
		}
		entries[abs] = true
	}

	// Literal entry patterns must exist; a miss on an explicitly named entry
	// is fatal.
	for _, pat := range pats.Entry {
		if isGlob(pat) || strings.HasPrefix(pat, "!") {
			continue
		}
		abs := filepath.Join(ws.Path, pat)
		if !regularFile(abs) {
			return nil, nil, fmt.Errorf("entry file %s does not exist", abs)
		}
		entries[abs] = true
	}

	// Entry must be a subset of project.
	for e := range entries {
		project[e] = true
	}

	set := &Set{
		Dir:     ws.Path,
		Entries: sortedKeys(entries),
		Project: sortedKeys(project),
	}
	if len(pats.Ignore) > 0 {
		set.ignoreMatcher = ignore.CompileIgnoreLines(pats.Ignore...)
	}
	return set, diags, nil
}

// walkFiles lists every regular file under dir, skipping node_modules, .git,
// and the given child workspace directories. Symlinks that escape dir are
// skipped.
func walkFiles(dir string, excludeDirs []string) ([]string, error) {
	excluded := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		excluded[d] = true
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			base := d.Name()
			if path != dir && (base == "node_modules" || base == ".git" || excluded[path]) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil
			}
			if !strings.HasPrefix(resolved, dir+string(filepath.Separator)) {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

// applyPatterns evaluates an ordered pattern list over the walked files.
// Negated patterns subtract; later patterns override earlier ones.
func applyPatterns(dir string, files []string, patterns []string) map[string]bool {
	out := make(map[string]bool)
	for _, pat := range patterns {
		negate := strings.HasPrefix(pat, "!")
		if negate {
			pat = pat[1:]
		}
		pat = strings.TrimPrefix(pat, "./")

		for _, f := range files {
			rel, err := filepath.Rel(dir, f)
			if err != nil {
				continue
			}
			ok, err := doublestar.Match(pat, filepath.ToSlash(rel))
			if err != nil || !ok {
				continue
			}
			if negate {
				delete(out, f)
			} else {
				out[f] = true
			}
		}
	}
	return out
}

// manifestEntryFiles collects entry file paths from manifest fields,
// including flattened exports targets that are not glob subpaths.
func manifestEntryFiles(m *manifest.Manifest) []string {
	var out []string
	for _, f := range m.EntryFields() {
		if !strings.HasPrefix(f, ".") && !strings.HasPrefix(f, "/") {
			// A bare-specifier field ("expo-router/entry") delegates the
			// entry to a package; plugins handle attribution.
			continue
		}
		out = append(out, filepath.Clean(f))
	}
	for _, t := range manifest.ExportTargets(m.Exports) {
		if strings.Contains(t, "*") {
			continue
		}
		if strings.HasPrefix(t, "./") || strings.HasPrefix(t, "../") {
			out = append(out, filepath.Clean(t))
		}
	}
	return out
}

func regularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isGlob(pat string) bool {
	return strings.ContainsAny(pat, "*?[{")
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
