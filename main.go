// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// nightowl is a terminal client for asking Google Gemini questions.
package main

import (
	"os"

	"github.com/jeranaias/nightowl-tui/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
