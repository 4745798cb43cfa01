// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/driftwood-dev/driftwood/internal/issue"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONEnvelope wraps report issues with metadata. Field names are part of
// the machine interface and stay stable.
type JSONEnvelope struct {
	Root        string            `json:"root"`
	GeneratedAt string            `json:"generated_at"`
	Issues      []JSONIssue       `json:"issues"`
	Diagnostics []JSONDiagnostic  `json:"diagnostics,omitempty"`
	Summary     map[string]int    `json:"summary"`
	Totals      JSONSummaryTotals `json:"totals"`
}

// JSONIssue is the JSON representation of one issue.
type JSONIssue struct {
	Workspace string `json:"workspace,omitempty"`
	File      string `json:"file,omitempty"`
	Symbol    string `json:"symbol,omitempty"`
	Line      int    `json:"line,omitempty"`
	Kind      string `json:"kind"`
	Severity  string `json:"severity"`
}

// JSONDiagnostic is the JSON representation of one demoted error.
type JSONDiagnostic struct {
	File    string `json:"file,omitempty"`
	Line    uint32 `json:"line,omitempty"`
	Message string `json:"message"`
}

// JSONSummaryTotals carries overall counts.
type JSONSummaryTotals struct {
	Issues      int `json:"issues"`
	Diagnostics int `json:"diagnostics"`
}

// JSONFormatter writes the report as a JSON envelope.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or
	// pretty-printed with two-space indentation.
	Compact bool

	// nowFunc is used for testing to override the current time.
	nowFunc func() time.Time
}

var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{nowFunc: time.Now}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string { return "json" }

// Format writes the report to w.
func (f *JSONFormatter) Format(r *issue.Report, w io.Writer) error {
	now := time.Now
	if f.nowFunc != nil {
		now = f.nowFunc
	}

	env := JSONEnvelope{
		Root:        r.Root,
		GeneratedAt: now().UTC().Format(time.RFC3339),
		Issues:      make([]JSONIssue, 0, len(r.Issues)),
		Summary:     make(map[string]int, len(r.Summary)),
		Totals:      JSONSummaryTotals{Issues: r.Total(), Diagnostics: len(r.Diagnostics)},
	}
	for _, is := range r.Issues {
		env.Issues = append(env.Issues, JSONIssue{
			Workspace: is.Workspace,
			File:      is.File,
			Symbol:    is.Symbol,
			Line:      is.Line,
			Kind:      string(is.Kind),
			Severity:  string(is.Severity),
		})
	}
	for _, d := range r.Diagnostics {
		env.Diagnostics = append(env.Diagnostics, JSONDiagnostic{File: d.File, Line: d.Line, Message: d.Message})
	}
	for kind, n := range r.Summary {
		env.Summary[string(kind)] = n
	}

	enc := json.NewEncoder(w)
	if !f.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(env)
}
