// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the HTTP client for the Google generative language API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Gemini client.
type ClientError struct {
	Type    ErrorType
	Message string
	Code    int // HTTP status code for upstream errors
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeTransport covers network-level failures (DNS, connection reset).
	ErrTypeTransport
	// ErrTypeTimeout covers requests that exceeded their deadline.
	ErrTypeTimeout
	// ErrTypeUpstream covers non-2xx statuses from the API.
	ErrTypeUpstream
	// ErrTypeMalformed covers response bodies that deviate from the expected
	// envelope shape.
	ErrTypeMalformed
)

// ErrTimeout is the sentinel for requests cut off by their deadline.
var ErrTimeout = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsUpstream checks if an error is a non-2xx upstream error.
func IsUpstream(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUpstream
	}
	return false
}

// IsMalformed checks if an error is a malformed-envelope error.
func IsMalformed(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeMalformed
	}
	return false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultBaseURL is the production generative language endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel is the generation model used for portfolio chat.
const DefaultModel = "gemini-2.0-flash-exp"

// DefaultTimeout bounds a single generation round-trip.
const DefaultTimeout = 30 * time.Second

// ClientConfig holds configuration options for the Gemini client.
type ClientConfig struct {
	// BaseURL is the API base URL (default: DefaultBaseURL)
	BaseURL string

	// Model is the generation model name (default: DefaultModel)
	Model string

	// APIKey is the credential passed as a URL query parameter. It must be
	// held server-side or in local user config, never embedded in
	// distributed client code.
	APIKey string

	// Timeout for a generation request (default: 30s)
	Timeout time.Duration

	// Generation holds the fixed sampling parameters.
	Generation GenerationConfig
}

// DefaultConfig returns the default client configuration. The API key must
// still be filled in by the caller.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:    DefaultBaseURL,
		Model:      DefaultModel,
		Timeout:    DefaultTimeout,
		Generation: DefaultGenerationConfig(),
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the generative language API.
//
// The Client is safe for concurrent use, although the request coordinator
// only ever keeps a single request in flight.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a Gemini client with the given configuration, filling in
// defaults for any zero values.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Generation == (GenerationConfig{}) {
		config.Generation = DefaultGenerationConfig()
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Config returns the client configuration.
func (c *Client) Config() *ClientConfig {
	return c.config
}

// endpoint builds the :generateContent URL with the key query parameter.
func (c *Client) endpoint() string {
	u := c.config.BaseURL + "/models/" + c.config.Model + ":generateContent"
	if c.config.APIKey != "" {
		u += "?key=" + url.QueryEscape(c.config.APIKey)
	}
	return u
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate sends one composed prompt and returns the extracted reply text.
//
// Exactly one HTTP request is issued per call. Failures are classified as
// transport, timeout, upstream (with status code), or malformed envelope;
// the caller treats them all the same way, so the classification exists for
// diagnostics only.
func (c *Client) Generate(ctx context.Context, promptText string) (string, error) {
	gen := c.config.Generation
	reqBody := GenerateRequest{
		Contents: []Content{
			{Parts: []Part{{Text: promptText}}},
		},
		GenerationConfig: &gen,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ClientError{Type: ErrTypeMalformed, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", ErrTimeout
		}
		return "", &ClientError{Type: ErrTypeTransport, Message: "request failed", Cause: err}
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Pull the API's own message when the error envelope parses, but
		// never let it reach end users; the coordinator logs it only.
		var apiErr APIError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return "", &ClientError{
				Type:    ErrTypeUpstream,
				Code:    resp.StatusCode,
				Message: "generation failed: " + apiErr.Error.Message,
			}
		}
		return "", &ClientError{
			Type:    ErrTypeUpstream,
			Code:    resp.StatusCode,
			Message: "generation failed with status " + strconv.Itoa(resp.StatusCode),
		}
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeMalformed, Message: "failed to decode response", Cause: err}
	}

	text, ok := result.ReplyText()
	if !ok {
		return "", &ClientError{Type: ErrTypeMalformed, Message: "response envelope missing candidates/content/parts"}
	}

	return text, nil
}

// drainAndClose consumes the remaining body so the connection can be reused.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
