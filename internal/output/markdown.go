// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"

	"github.com/driftwood-dev/driftwood/internal/issue"
)

func init() {
	RegisterFormatter(&MarkdownFormatter{})
}

// MarkdownFormatter writes the report as a Markdown document, one section
// and table per issue kind.
type MarkdownFormatter struct{}

var _ Formatter = (*MarkdownFormatter)(nil)

var markdownTitles = map[issue.Kind]string{
	issue.KindUnusedFile:        "Unused files",
	issue.KindUnusedDependency:  "Unused dependencies",
	issue.KindUnlistedDep:       "Unlisted dependencies",
	issue.KindUnlistedBinary:    "Unlisted binaries",
	issue.KindUnresolvedImport:  "Unresolved imports",
	issue.KindUnusedExport:      "Unused exports",
	issue.KindUnusedClassMember: "Unused class members",
	issue.KindUnusedEnumMember:  "Unused enum members",
}

// Name returns the format name.
func (*MarkdownFormatter) Name() string { return "markdown" }

// Format writes the report to w.
func (*MarkdownFormatter) Format(r *issue.Report, w io.Writer) error {
	fmt.Fprintf(w, "# Driftwood report\n\n")
	fmt.Fprintf(w, "Root: `%s`\n\n", r.Root)

	if r.Total() == 0 {
		fmt.Fprintln(w, "No issues found.")
	}

	for _, kind := range issue.AllKinds {
		if r.Count(kind) == 0 {
			continue
		}
		fmt.Fprintf(w, "## %s (%d)\n\n", markdownTitles[kind], r.Count(kind))
		fmt.Fprintln(w, "| Workspace | File | Symbol | Severity |")
		fmt.Fprintln(w, "| --- | --- | --- | --- |")
		for _, is := range r.Issues {
			if is.Kind != kind {
				continue
			}
			file := is.File
			if is.Line > 0 {
				file = fmt.Sprintf("%s:%d", is.File, is.Line)
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", is.Workspace, file, is.Symbol, is.Severity)
		}
		fmt.Fprintln(w)
	}

	if len(r.Diagnostics) > 0 {
		fmt.Fprintf(w, "## Diagnostics (%d)\n\n", len(r.Diagnostics))
		for _, d := range r.Diagnostics {
			if d.File != "" {
				fmt.Fprintf(w, "- `%s`: %s\n", d.File, d.Message)
			} else {
				fmt.Fprintf(w, "- %s\n", d.Message)
			}
		}
		fmt.Fprintln(w)
	}

	_, err := fmt.Fprintf(w, "Total: %d issues\n", r.Total())
	return err
}
