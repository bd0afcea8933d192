// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt builds the outbound request text sent to the generation API.
//
// The composed prompt fully determines the model's reply: it concatenates the
// static persona context, a bounded window of the most recent transcript
// turns, and the new user utterance followed by an empty assistant marker.
// Both the terminal widget and the relay server compose prompts through this
// package, so the two can never disagree about prompt shape.
package prompt

import (
	"strings"

	"github.com/Shashank9048/Smart-Portfolio/internal/model"
)

// DefaultWindow is the number of most recent prior turns included in a
// composed prompt. Bounding the window keeps outbound payload size and
// latency predictable as conversations grow; losing older context is an
// accepted tradeoff.
const DefaultWindow = 6

// =============================================================================
// COMPOSER
// =============================================================================

// Composer renders conversation state into a single prompt string.
//
// The persona is fixed for the composer's lifetime and appears verbatim at
// the start of every prompt.
type Composer struct {
	persona string
	window  int
}

// NewComposer creates a composer for the given persona. A window of zero or
// less falls back to DefaultWindow.
func NewComposer(persona string, window int) *Composer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Composer{
		persona: persona,
		window:  window,
	}
}

// Window returns the configured context window size.
func (c *Composer) Window() int {
	return c.window
}

// Persona returns the persona context the composer was built with.
func (c *Composer) Persona() string {
	return c.persona
}

// Compose builds the full prompt for a new user utterance.
//
// Layout: persona context, then a "Recent conversation:" block holding at
// most the last Window() turns rendered one per line as "<Role>: <content>",
// then the new utterance labeled as the user's turn and a trailing empty
// assistant marker.
func (c *Composer) Compose(history []model.Turn, message string) string {
	var b strings.Builder
	b.WriteString(c.persona)

	recent := lastN(history, c.window)
	if len(recent) > 0 {
		b.WriteString("\n\nRecent conversation:")
		for _, turn := range recent {
			b.WriteString("\n")
			b.WriteString(turn.Role.PromptLabel())
			b.WriteString(": ")
			b.WriteString(turn.Content)
		}
	}

	b.WriteString("\nUser: ")
	b.WriteString(message)
	b.WriteString("\nAssistant:")

	return b.String()
}

// lastN returns the last n elements of turns without copying.
func lastN(turns []model.Turn, n int) []model.Turn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
