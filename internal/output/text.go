// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package output

import (
	"io"

	"github.com/driftwood-dev/driftwood/internal/issue"
	"github.com/driftwood-dev/driftwood/internal/report"
)

func init() {
	RegisterFormatter(&TextFormatter{})
}

// TextFormatter writes the human-readable terminal report.
type TextFormatter struct{}

var _ Formatter = (*TextFormatter)(nil)

// Name returns the format name.
func (*TextFormatter) Name() string { return "text" }

// Format writes the report to w.
func (*TextFormatter) Format(r *issue.Report, w io.Writer) error {
	return report.Render(w, r)
}
