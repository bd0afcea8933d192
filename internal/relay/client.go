// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Shashank9048/Smart-Portfolio/internal/model"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// DefaultTimeout bounds a full relay round trip.
const DefaultTimeout = 30 * time.Second

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to a relay server. It satisfies chat.Responder, so the
// coordinator cannot tell it apart from the direct Gemini path.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a relay client for baseURL (e.g. "http://localhost:8090").
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Respond sends one chat request and returns the assistant reply.
func (c *Client) Respond(ctx context.Context, history []model.Turn, message string) (string, error) {
	reqBody := ChatRequest{
		Message:             message,
		ConversationHistory: HistoryFromTurns(history),
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("relay request timed out: %w", err)
		}
		return "", fmt.Errorf("relay request failed: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody ErrorResponse
		if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&errBody); decodeErr == nil && errBody.Error != "" {
			return "", fmt.Errorf("relay returned HTTP %d: %s", resp.StatusCode, errBody.Error)
		}
		return "", fmt.Errorf("relay returned HTTP %d", resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode relay response: %w", err)
	}
	if chatResp.Response == "" {
		return "", errors.New("relay response contained no reply text")
	}
	return chatResp.Response, nil
}

func drainAndClose(body io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(body, 4096)) //nolint:errcheck
	body.Close()
}
