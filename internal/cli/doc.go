// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the nightowl command line.
//
// # Commands
//
//	nightowl                  full-screen chat (default)
//	nightowl ask <question>   one question, answer on stdout
//	nightowl chat             line-oriented chat for plain terminals
//	nightowl theme [show|toggle]
//	nightowl config [path|show|init]
//	nightowl version
//
// # Global Flags
//
//	--config <path>     config file (default ~/.nightowl/config.toml)
//	--model <name>      Gemini model override
//	--log-level <lvl>   debug, info, warn or error
//
// Logs always go to the log file so they never interleave with the UI.
package cli
