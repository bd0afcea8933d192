// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the request coordinator for the portfolio assistant.
package chat

import (
	"context"

	"github.com/Shashank9048/Smart-Portfolio/internal/gemini"
	"github.com/Shashank9048/Smart-Portfolio/internal/model"
	"github.com/Shashank9048/Smart-Portfolio/internal/prompt"
)

// DirectResponder answers by composing the prompt locally and calling the
// generation API with a locally held credential. This is the client-direct
// variant; the relay variant lives in the relay package.
type DirectResponder struct {
	client   *gemini.Client
	composer *prompt.Composer
}

// NewDirectResponder creates a responder backed by the given client and
// composer.
func NewDirectResponder(client *gemini.Client, composer *prompt.Composer) *DirectResponder {
	return &DirectResponder{
		client:   client,
		composer: composer,
	}
}

// Respond composes the full prompt from the history window and the new
// message, then performs one generation round-trip.
func (d *DirectResponder) Respond(ctx context.Context, history []model.Turn, message string) (string, error) {
	return d.client.Generate(ctx, d.composer.Compose(history, message))
}
