// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/driftwood-dev/driftwood/internal/analysis"
	"github.com/driftwood-dev/driftwood/internal/config"
	"github.com/driftwood-dev/driftwood/internal/output"
	_ "github.com/driftwood-dev/driftwood/internal/plugins"
)

// Analyze-specific flag values.
var (
	analyzeFormat              string
	analyzeOutput              string
	analyzeInclude             []string
	analyzeExclude             []string
	analyzeIgnore              []string
	analyzeIgnoreDeps          []string
	analyzeIgnoreBinaries      []string
	analyzeIncludeEntryExports bool
	analyzeClassMembers        bool
	analyzeEnumMembers         bool
	analyzeWorkers             int
	analyzeNoConfig            bool
	analyzeNoExitCode          bool
)

// analyzeCmd is the subcommand for analyzing a project.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a project and report unused code",
	Long: `Analyze a JavaScript or TypeScript project rooted at the given path
(default ".") and report unused files, unused and unlisted dependencies,
unlisted binaries, unresolved imports, and unused exports.

Exits 0 when no issues are found, 2 when issues are found, and 1 on
invalid arguments or analysis failure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "output format (text, json, markdown)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output file path (default: stdout)")
	analyzeCmd.Flags().StringSliceVar(&analyzeInclude, "include", nil, "only report these issue kinds (comma-separated)")
	analyzeCmd.Flags().StringSliceVar(&analyzeExclude, "exclude", nil, "do not report these issue kinds (comma-separated)")
	analyzeCmd.Flags().StringSliceVar(&analyzeIgnore, "ignore", nil, "glob patterns for files to ignore")
	analyzeCmd.Flags().StringSliceVar(&analyzeIgnoreDeps, "ignore-dependencies", nil, "dependency names or globs to never report unused")
	analyzeCmd.Flags().StringSliceVar(&analyzeIgnoreBinaries, "ignore-binaries", nil, "binary names to never report unlisted")
	analyzeCmd.Flags().BoolVar(&analyzeIncludeEntryExports, "include-entry-exports", false, "report unused exports in entry files too")
	analyzeCmd.Flags().BoolVar(&analyzeClassMembers, "class-members", false, "report unused class members")
	analyzeCmd.Flags().BoolVar(&analyzeEnumMembers, "enum-members", false, "report unused enum members")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", runtime.NumCPU(), "parallel parse workers")
	analyzeCmd.Flags().BoolVar(&analyzeNoConfig, "no-config", false, "skip loading .driftwood.yaml")
	analyzeCmd.Flags().BoolVar(&analyzeNoExitCode, "no-exit-code", false, "exit 0 even when issues are found")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := loadAnalyzeConfig(root)
	if err != nil {
		return exitError(ExitInvalidArgs, "driftwood: %v", err)
	}

	report, err := analysis.Run(cmd.Context(), analysis.Options{
		Root:    root,
		Config:  cfg,
		Workers: analyzeWorkers,
	})
	if err != nil {
		return exitError(ExitInvalidArgs, "driftwood: %v", err)
	}

	formatter, err := output.GetFormatter(analyzeFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "driftwood: %v", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if analyzeOutput != "" {
		f, err := os.Create(analyzeOutput) //nolint:gosec // user-provided output path
		if err != nil {
			return exitError(ExitInvalidArgs, "driftwood: %v", err)
		}
		defer f.Close() //nolint:errcheck // write errors surface via Format
		w = f
	}
	if err := formatter.Format(report, w); err != nil {
		return exitError(ExitInvalidArgs, "driftwood: writing report: %v", err)
	}

	if report.Total() > 0 && !analyzeNoExitCode {
		return exitError(ExitIssuesFound, "")
	}
	return nil
}

// loadAnalyzeConfig loads the config file (unless disabled) and overlays
// flag values. Flags append to list settings and force boolean ones on.
func loadAnalyzeConfig(root string) (*config.Config, error) {
	cfg := &config.Config{}
	if !analyzeNoConfig {
		loaded, err := config.Load(root)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.Ignore = append(cfg.Ignore, analyzeIgnore...)
	cfg.IgnoreDependencies = append(cfg.IgnoreDependencies, analyzeIgnoreDeps...)
	cfg.IgnoreBinaries = append(cfg.IgnoreBinaries, analyzeIgnoreBinaries...)
	cfg.Include = append(cfg.Include, analyzeInclude...)
	cfg.Exclude = append(cfg.Exclude, analyzeExclude...)
	if analyzeIncludeEntryExports {
		cfg.IncludeEntryExports = true
	}
	if analyzeClassMembers {
		cfg.IncludeClassMembers = true
	}
	if analyzeEnumMembers {
		cfg.IncludeEnumMembers = true
	}
	return cfg, nil
}
