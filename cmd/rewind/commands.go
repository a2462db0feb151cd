// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	// --- Persistent Flags ---
	configPath string
	logLevel   string
	logJSON    bool

	// --- Demo Flags ---
	demoDepth  int
	demoWindow time.Duration

	// --- Root Command ---
	rootCmd = &cobra.Command{
		Use:   "rewind",
		Short: "Bounded undo/redo journal for reversible edits",
		Long: `Rewind keeps a bounded, ordered history of reversible commands and
moves a cursor through it: undo steps back, redo steps forward, and rapid
edits against the same target coalesce into a single history entry.

The demo subcommand runs an interactive terminal session backed by a live
journal so the coalescing and cursor behavior can be explored by hand.`,
	}

	// --- Demo Command ---
	demoCmd = &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive undo/redo demo",
		Long: `Starts a terminal UI backed by a journal. A counter and a text field
are both edited through reversible commands, so every change lands in the
shared history and can be undone, redone, or truncated.

Keys: +/- change the counter, tab switches focus to the text field,
ctrl+z undoes, ctrl+r redoes, ctrl+x drops the redo branch, q quits.`,
		Run: runDemo, // Defined in tui.go
	}

	// --- Version Command ---
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the rewind version",
		Run:   runVersion,
	}
)

// init wires up all commands and their flags.
func init() {
	// Persistent flags available to all commands.
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML config file (default: ~/.rewind/config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false,
		"Emit logs as JSON instead of text")

	// Demo flags.
	demoCmd.Flags().IntVar(&demoDepth, "depth", 0,
		"Maximum journal depth before the oldest entry is evicted")
	demoCmd.Flags().DurationVar(&demoWindow, "window", 0,
		"Coalescing window for rapid same-target edits (e.g. 250ms)")

	// Register commands.
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)
}

// applyFlagOverrides layers explicitly-set command line flags on top of the
// loaded configuration. Flags win over the config file, which wins over
// defaults.
func applyFlagOverrides(cmd *cobra.Command, config *Config) {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("log-level") {
		config.LogLevel = logLevel
	}
	if flags.Changed("log-json") {
		config.LogJSON = logJSON
	}
	if cmd.Flags().Changed("depth") {
		config.MaxDepth = demoDepth
	}
	if cmd.Flags().Changed("window") {
		config.UpdateWindow = demoWindow
	}
}

// runVersion prints the build version.
func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("rewind %s\n", version)
}
