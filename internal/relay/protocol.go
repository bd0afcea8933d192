// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package relay defines the wire contract between the chat widget and the
// relay server, and provides the client side of that contract.
//
// The relay exists so the Gemini credential stays server-side instead of
// shipping inside distributed client code. The server composes prompts with
// the same composer the direct variant uses, keeping the two paths from
// drifting apart.
package relay

import (
	"fmt"

	"github.com/Shashank9048/Smart-Portfolio/internal/model"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// HistoryEntry is one prior turn on the wire.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message             string         `json:"message"`
	ConversationHistory []HistoryEntry `json:"conversationHistory"`
}

// ChatResponse is the success body: the reply plus the history echoed back
// with the two new turns appended.
type ChatResponse struct {
	Response            string         `json:"response"`
	ConversationHistory []HistoryEntry `json:"conversationHistory"`
}

// ErrorResponse is the failure body. Details stays generic; raw upstream
// error text is logged server-side only.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// HistoryFromTurns converts transcript turns to wire entries.
func HistoryFromTurns(turns []model.Turn) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(turns))
	for _, turn := range turns {
		out = append(out, HistoryEntry{
			Role:    turn.Role.String(),
			Content: turn.Content,
		})
	}
	return out
}

// TurnsFromHistory converts wire entries back to turns, rejecting unknown
// roles so a hostile client cannot inject arbitrary speaker labels into a
// composed prompt.
func TurnsFromHistory(entries []HistoryEntry) ([]model.Turn, error) {
	out := make([]model.Turn, 0, len(entries))
	for i, e := range entries {
		role := model.Role(e.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("invalid role %q at history entry %d", e.Role, i)
		}
		out = append(out, model.NewTurn(role, e.Content))
	}
	return out, nil
}
