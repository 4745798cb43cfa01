// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	driftlog "github.com/driftwood-dev/driftwood/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for driftwood.
var rootCmd = &cobra.Command{
	Use:   "driftwood",
	Short: "Find unused files, dependencies and exports in JS/TS projects",
	Long: `Driftwood analyzes a JavaScript or TypeScript project as a whole and
reports what has drifted out of use: files nothing imports, dependencies
nothing requires, exports nothing references, and the inverse problems
of imports that resolve to nothing and dependencies used but never
declared. Monorepos with npm, yarn, pnpm or bun workspaces are analyzed
across workspace boundaries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		driftlog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
