// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat turns and transcripts.
package model

import (
	"sync"
	"time"
)

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the ordered history of turns for a single chat session.
//
// The transcript grows by append only. Turns are never edited in place or
// reordered; insertion order is the conversational order. It is safe for
// concurrent use: appends happen on the coordinator's request goroutine while
// the UI reads snapshots for rendering.
type Transcript struct {
	mu        sync.RWMutex
	turns     []Turn
	createdAt time.Time
	updatedAt time.Time
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	now := time.Now()
	return &Transcript{
		turns:     make([]Turn, 0),
		createdAt: now,
		updatedAt: now,
	}
}

// =============================================================================
// TURN MANAGEMENT
// =============================================================================

// Append adds a turn to the end of the transcript. It never fails.
func (t *Transcript) Append(turn Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, turn)
	t.updatedAt = time.Now()
}

// AppendUser creates and appends a user turn, returning it.
func (t *Transcript) AppendUser(content string) Turn {
	turn := NewUserTurn(content)
	t.Append(turn)
	return turn
}

// AppendAssistant creates and appends an assistant turn, returning it.
func (t *Transcript) AppendAssistant(content string) Turn {
	turn := NewAssistantTurn(content)
	t.Append(turn)
	return turn
}

// Snapshot returns a copy of the full ordered sequence of turns.
// The copy is safe to iterate while the transcript keeps growing.
func (t *Transcript) Snapshot() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns in the transcript.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Last returns the most recent turn and true, or a zero turn and false when
// the transcript is empty.
func (t *Transcript) Last() (Turn, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.turns) == 0 {
		return Turn{}, false
	}
	return t.turns[len(t.turns)-1], true
}

// Reset clears the transcript. This is a full session reset; it is the only
// operation that removes turns.
func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = t.turns[:0]
	t.updatedAt = time.Now()
}

// =============================================================================
// METADATA
// =============================================================================

// CreatedAt returns when the transcript was created.
func (t *Transcript) CreatedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.createdAt
}

// UpdatedAt returns when the transcript last changed.
func (t *Transcript) UpdatedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.updatedAt
}

// Preview returns a short preview of the conversation, taken from the first
// user turn, for display in status lines.
func (t *Transcript) Preview() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, turn := range t.turns {
		if turn.Role == RoleUser {
			return turn.Preview(50)
		}
	}
	return "New conversation"
}
