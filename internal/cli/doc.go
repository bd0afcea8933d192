// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements command-line parsing and the terminal-facing
// commands of the portfolio assistant.
//
// The binary runs in three modes:
//
//   - default: the full-screen TUI widget
//   - chat:    a readline-style REPL for quick terminal sessions
//   - serve:   the HTTP relay that keeps the Gemini key server-side
//
// Parsing is hand-rolled rather than flag-package based so that commands
// and global flags can be freely interleaved (smartfolio chat --model ...).
package cli
