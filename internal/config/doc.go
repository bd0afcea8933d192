// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// portfolio assistant.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (GEMINI_API_KEY, PORTFOLIO_*)
//   - ~/.smart-portfolio/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	model := cfg.Gemini.Model
//	window := cfg.Chat.ContextWindow
//
// The Gemini API key is never embedded in source; it comes from the config
// file (written 0600) or the GEMINI_API_KEY environment variable.
package config
