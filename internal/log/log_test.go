// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    slog.Level
	}{
		{"default", false, false, slog.LevelInfo},
		{"verbose", true, false, slog.LevelDebug},
		{"quiet", false, true, slog.LevelWarn},
		{"quiet beats verbose", true, true, slog.LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Level(tt.verbose, tt.quiet))
		})
	}
}

func TestSetupTo_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	SetupTo(&buf, false, false)

	slog.Debug("hidden")
	slog.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestSetupTo_Reinstall(t *testing.T) {
	var buf bytes.Buffer
	SetupTo(&buf, true, false)
	assert.True(t, slog.Default().Handler().Enabled(context.Background(), slog.LevelDebug))

	SetupTo(&buf, false, true)
	h := slog.Default().Handler()
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
}
