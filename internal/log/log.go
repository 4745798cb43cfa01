// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package log wires log/slog for the CLI. Reports go to stdout, so all
// logging stays on stderr.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Level maps the verbosity flags to a slog level. Quiet beats verbose when
// both are set.
func Level(verbose, quiet bool) slog.Level {
	if quiet {
		return slog.LevelWarn
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Setup installs a text handler on stderr as the default logger.
func Setup(verbose, quiet bool) {
	SetupTo(os.Stderr, verbose, quiet)
}

// SetupTo installs the default logger writing to w.
func SetupTo(w io.Writer, verbose, quiet bool) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: Level(verbose, quiet)})
	slog.SetDefault(slog.New(h))
}
