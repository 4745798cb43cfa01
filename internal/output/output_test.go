// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwood-dev/driftwood/internal/issue"
)

func sampleReport() *issue.Report {
	return issue.NewReport("/repo", []issue.Issue{
		{Workspace: "app", File: "src/dead.ts", Kind: issue.KindUnusedFile, Severity: issue.SeverityError},
		{Workspace: "app", Symbol: "left-pad", Kind: issue.KindUnusedDependency, Severity: issue.SeverityError},
		{Workspace: "app", File: "src/lib.ts", Symbol: "idle", Line: 7, Kind: issue.KindUnusedExport, Severity: issue.SeverityWarn},
	}, []issue.Diagnostic{
		{File: "src/gen.ts", Message: "parse error"},
	})
}

func TestGetFormatter_Builtins(t *testing.T) {
	for _, name := range []string{"text", "json", "markdown"} {
		f, err := GetFormatter(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.Name())
	}
}

func TestGetFormatter_Unknown(t *testing.T) {
	_, err := GetFormatter("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format: "xml"`)
	assert.Contains(t, err.Error(), "json")
}

func TestJSON_Envelope(t *testing.T) {
	f := NewJSONFormatter()
	f.nowFunc = func() time.Time {
		return time.Date(2026, 8, 6, 12, 0, 0, 0, time.UTC)
	}

	var buf bytes.Buffer
	require.NoError(t, f.Format(sampleReport(), &buf))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.Equal(t, "/repo", env.Root)
	assert.Equal(t, "2026-08-06T12:00:00Z", env.GeneratedAt)
	require.Len(t, env.Issues, 3)
	assert.Equal(t, "unused-file", env.Issues[0].Kind)
	assert.Equal(t, 7, env.Issues[2].Line)
	require.Len(t, env.Diagnostics, 1)
	assert.Equal(t, 3, env.Totals.Issues)
	assert.Equal(t, 1, env.Totals.Diagnostics)
	assert.Equal(t, 1, env.Summary["unused-export"])
}

func TestJSON_Compact(t *testing.T) {
	f := NewJSONFormatter()
	f.Compact = true

	var buf bytes.Buffer
	require.NoError(t, f.Format(sampleReport(), &buf))
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestJSON_EmptyReportHasIssueArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(issue.NewReport("/repo", nil, nil), &buf))
	assert.Contains(t, buf.String(), `"issues": []`, "empty reports keep the array, not null")
}

func TestMarkdown_Sections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownFormatter{}).Format(sampleReport(), &buf))
	out := buf.String()

	assert.Contains(t, out, "# Driftwood report")
	assert.Contains(t, out, "## Unused files (1)")
	assert.Contains(t, out, "## Unused dependencies (1)")
	assert.Contains(t, out, "| app | src/lib.ts:7 | idle | warn |")
	assert.Contains(t, out, "## Diagnostics (1)")
	assert.Contains(t, out, "Total: 3 issues")
}

func TestMarkdown_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownFormatter{}).Format(issue.NewReport("/repo", nil, nil), &buf))
	out := buf.String()

	assert.Contains(t, out, "No issues found.")
	assert.Contains(t, out, "Total: 0 issues")
	assert.NotContains(t, out, "##")
}

func TestText_Delegates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{}).Format(issue.NewReport("/repo", nil, nil), &buf))
	assert.Contains(t, buf.String(), "no issues found")
}

func TestRegisterFormatter_Replaces(t *testing.T) {
	resetFmtForTesting()
	defer func() {
		resetFmtForTesting()
		RegisterFormatter(&TextFormatter{})
		RegisterFormatter(NewJSONFormatter())
		RegisterFormatter(&MarkdownFormatter{})
	}()

	RegisterFormatter(&TextFormatter{})
	f, err := GetFormatter("text")
	require.NoError(t, err)
	assert.IsType(t, &TextFormatter{}, f)

	_, err = GetFormatter("json")
	assert.Error(t, err)
}
