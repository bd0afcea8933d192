// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for the smartfolio CLI.
//
// Command: ask
// Short:   Ask a single question and exit
//
// Examples:
//   smartfolio ask "What projects has Shashank built?"
//   smartfolio ask --relay https://portfolio.example.com "What stack?"
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	chatcore "github.com/Shashank9048/Smart-Portfolio/internal/chat"
	"github.com/Shashank9048/Smart-Portfolio/internal/config"
)

// RunAsk sends a single question through the responder and prints the reply.
func RunAsk(responder chatcore.Responder, cfg *config.Config, args Args) error {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		return fmt.Errorf("ask requires a question, e.g. smartfolio ask \"What projects has Shashank built?\"")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Gemini.Timeout())
	defer cancel()

	start := time.Now()
	reply, err := responder.Respond(ctx, nil, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	displayResponse(reply)

	if !args.Quiet && IsStdoutTTY() {
		fmt.Printf("%s %s\n",
			infoStyle.Render("[Took]"),
			time.Since(start).Round(time.Millisecond))
	}
	return nil
}
