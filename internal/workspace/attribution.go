// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package workspace

import (
	"sort"

	"github.com/driftwood-dev/driftwood/internal/manifest"
)

// DepRecord tracks the usage evidence gathered for one declared dependency.
// A dependency is unused iff RefFiles and PluginRefs are both empty and the
// dep is not marked ignored.
type DepRecord struct {
	Bucket     manifest.Bucket
	RefFiles   map[string]bool // Referring files (absolute paths).
	PluginRefs []string        // Names of plugins that attributed this dep.
	Ignored    bool
}

// Attribution is the per-workspace dependency attribution table.
type Attribution struct {
	deps map[string]*DepRecord
}

// NewAttribution seeds the table with every dependency m declares.
func NewAttribution(m *manifest.Manifest) *Attribution {
	a := &Attribution{deps: make(map[string]*DepRecord)}
	for _, d := range m.DeclaredDeps() {
		a.deps[d.Name] = &DepRecord{
			Bucket:   d.Bucket,
			RefFiles: make(map[string]bool),
		}
	}
	return a
}

// Record returns the record for pkg, or nil if pkg is not declared here.
func (a *Attribution) Record(pkg string) *DepRecord { return a.deps[pkg] }

// MarkFileRef records that file references pkg. It reports whether pkg is
// declared in this workspace.
func (a *Attribution) MarkFileRef(pkg, file string) bool {
	rec, ok := a.deps[pkg]
	if !ok {
		return false
	}
	rec.RefFiles[file] = true
	return true
}

// MarkPluginRef records that plugin guarantees pkg is used.
func (a *Attribution) MarkPluginRef(pkg, plugin string) bool {
	rec, ok := a.deps[pkg]
	if !ok {
		return false
	}
	rec.PluginRefs = append(rec.PluginRefs, plugin)
	return true
}

// Used reports whether pkg has any usage evidence.
func (a *Attribution) Used(pkg string) bool {
	rec, ok := a.deps[pkg]
	return ok && (len(rec.RefFiles) > 0 || len(rec.PluginRefs) > 0)
}

// MarkIgnored excludes pkg from the unused report.
func (a *Attribution) MarkIgnored(pkg string) {
	if rec, ok := a.deps[pkg]; ok {
		rec.Ignored = true
	}
}

// Unused returns the declared dependency names with no usage evidence,
// sorted.
func (a *Attribution) Unused() []string {
	var out []string
	for name, rec := range a.deps {
		if rec.Ignored {
			continue
		}
		if len(rec.RefFiles) == 0 && len(rec.PluginRefs) == 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Names returns every declared dependency name, sorted.
func (a *Attribution) Names() []string {
	out := make([]string, 0, len(a.deps))
	for name := range a.deps {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
