// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the HTTP relay for the portfolio chat widget.
//
// Endpoints:
//   - POST /api/chat - One chat exchange: message plus conversation history
//     in, assistant reply plus updated history out
//   - GET  /health   - Health check
//
// The relay exists so the Gemini API key lives server-side. Clients send the
// full conversation history with every request; the server holds no session
// state, so any instance can answer any request. Upstream failures return a
// generic 500 body; the raw error is logged server-side only.
package server
