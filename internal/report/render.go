// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package report renders an analysis report for human consumption on a
// terminal. Machine formats live in the output package.
package report

import (
	"fmt"
	"io"

	"github.com/driftwood-dev/driftwood/internal/issue"
)

// sectionTitles maps issue kinds to their report headings.
var sectionTitles = map[issue.Kind]string{
	issue.KindUnusedFile:        "Unused files",
	issue.KindUnusedDependency:  "Unused dependencies",
	issue.KindUnlistedDep:       "Unlisted dependencies",
	issue.KindUnlistedBinary:    "Unlisted binaries",
	issue.KindUnresolvedImport:  "Unresolved imports",
	issue.KindUnusedExport:      "Unused exports",
	issue.KindUnusedClassMember: "Unused class members",
	issue.KindUnusedEnumMember:  "Unused enum members",
}

// Render writes the report to w, one section per issue kind that has
// findings, followed by diagnostics and a summary line.
func Render(w io.Writer, r *issue.Report) error {
	if r.Total() == 0 && len(r.Diagnostics) == 0 {
		_, err := fmt.Fprintln(w, colorGreen.Sprint("✓")+" no issues found")
		return err
	}

	for _, kind := range issue.AllKinds {
		if r.Count(kind) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d)\n", colorBold.Sprint(sectionTitles[kind]), r.Count(kind))
		for _, is := range r.Issues {
			if is.Kind != kind {
				continue
			}
			renderIssue(w, is)
		}
		fmt.Fprintln(w)
	}

	if len(r.Diagnostics) > 0 {
		fmt.Fprintf(w, "%s (%d)\n", colorBold.Sprint("Diagnostics"), len(r.Diagnostics))
		for _, d := range r.Diagnostics {
			if d.File != "" {
				fmt.Fprintf(w, "  %s: %s\n", colorDim.Sprint(d.File), d.Message)
			} else {
				fmt.Fprintf(w, "  %s\n", d.Message)
			}
		}
		fmt.Fprintln(w)
	}

	_, err := fmt.Fprintf(w, "%d issues\n", r.Total())
	return err
}

// renderIssue writes one indented issue line. Layout varies by what the
// issue carries: dependency issues have no file, export issues have both a
// file and a symbol.
func renderIssue(w io.Writer, is issue.Issue) {
	loc := is.File
	if is.Line > 0 {
		loc = fmt.Sprintf("%s:%d", is.File, is.Line)
	}
	switch {
	case is.File == "":
		fmt.Fprintf(w, "  %s  %s", is.Symbol, colorSeverity(is.Severity))
	case is.Symbol == "":
		fmt.Fprintf(w, "  %s  %s", loc, colorSeverity(is.Severity))
	default:
		fmt.Fprintf(w, "  %s  %s  %s", is.Symbol, colorDim.Sprint(loc), colorSeverity(is.Severity))
	}
	if is.Workspace != "" {
		fmt.Fprintf(w, "  %s", colorDim.Sprint("("+is.Workspace+")"))
	}
	fmt.Fprintln(w)
}
