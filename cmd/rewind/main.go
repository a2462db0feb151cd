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
	"log"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/rewind/pkg/logging"
)

// version is overridable at build time via -ldflags "-X main.version=...".
var version = "0.1.0-dev"

var (
	config    Config
	appLogger *logging.Logger
)

func main() {
	// Execute the root command. Cobra handles parsing the arguments.
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}

	if appLogger != nil {
		_ = appLogger.Close()
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		loaded, err := LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		applyFlagOverrides(cmd, &loaded)
		if err := loaded.Validate(); err != nil {
			log.Fatalf("Error in config: %v", err)
		}
		config = loaded

		level, err := logging.ParseLevel(config.LogLevel)
		if err != nil {
			log.Fatalf("Error in config: %v", err)
		}
		appLogger = logging.New(logging.Config{
			Level:   level,
			LogDir:  config.LogDir,
			Service: "rewind",
			JSON:    config.LogJSON,
		})
	}
}
