// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for nightowl.
//
// Configuration is TOML, loaded from (in order of precedence):
//   - Environment variables (NIGHTOWL_*, GEMINI_API_KEY)
//   - ~/.nightowl/config.toml, or the file given with --config
//   - Built-in defaults
//
// The API key is never compiled in. It comes from the config file or the
// environment and is only ever placed on the outbound request.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := gemini.NewClient(cfg.API.APIKey, gemini.WithModel(cfg.API.Model))
package config
