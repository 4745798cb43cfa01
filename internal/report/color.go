// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package report

import (
	"github.com/fatih/color"

	"github.com/driftwood-dev/driftwood/internal/issue"
)

// Shared color printers for report sections.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
	colorDim    = color.New(color.Faint)
)

// colorSeverity colors a severity label.
func colorSeverity(s issue.Severity) string {
	switch s {
	case issue.SeverityError:
		return colorRed.Sprint(s)
	case issue.SeverityWarn:
		return colorYellow.Sprint(s)
	default:
		return string(s)
	}
}
