// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/driftwood-dev/driftwood/internal/config"
	"github.com/driftwood-dev/driftwood/internal/entry"
)

// Init-specific flag values.
var initForce bool

// initCmd is the subcommand for generating a starter config file.
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Generate a starter .driftwood.yaml",
	Long: `Write a starter .driftwood.yaml to the given repository root (default ".").
The generated file spells out the default entry and project patterns so
they can be edited in place.

Refuses to overwrite an existing config unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing .driftwood.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	absPath, err := filepath.Abs(root)
	if err != nil {
		return exitError(ExitInvalidArgs, "driftwood: cannot resolve path %q (%v)", root, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "driftwood: path %q does not exist", root)
	}
	if !info.IsDir() {
		return exitError(ExitInvalidArgs, "driftwood: %q is not a directory", root)
	}

	path := filepath.Join(absPath, config.FileName)
	if _, err := os.Stat(path); err == nil && !initForce {
		return exitError(ExitInvalidArgs, "driftwood: %s already exists (use --force to overwrite)", config.FileName)
	}

	cfg := &config.Config{
		Entry:   entry.DefaultEntryPatterns,
		Project: entry.DefaultProjectPatterns,
	}

	f, err := os.Create(path) //nolint:gosec // path derives from the user-provided root
	if err != nil {
		return exitError(ExitInvalidArgs, "driftwood: %v", err)
	}
	defer f.Close() //nolint:errcheck // write errors surface via Write

	if err := config.Write(f, cfg); err != nil {
		return exitError(ExitInvalidArgs, "driftwood: writing %s: %v", config.FileName, err)
	}

	slog.Info("config written", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
