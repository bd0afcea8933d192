// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the HTTP client for the Google generative language API.
package gemini

// =============================================================================
// REQUEST TYPES
// =============================================================================

// GenerateRequest is the request body for the :generateContent endpoint.
type GenerateRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content is one content block of a request or response.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part holds a single text fragment.
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig contains the sampling parameters for a generation.
// These are fixed configuration constants, not user-tunable at runtime.
type GenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
}

// DefaultGenerationConfig returns the generation parameters used for
// portfolio chat replies.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		MaxOutputTokens: 500,
		Temperature:     0.7,
		TopP:            0.8,
		TopK:            40,
	}
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// GenerateResponse is the success envelope from the :generateContent endpoint.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated reply candidate.
type Candidate struct {
	Content Content `json:"content"`
}

// ReplyText extracts the reply from the candidates[0].content.parts[0].text
// path. The second return value is false when the envelope deviates from
// that exact shape.
func (r *GenerateResponse) ReplyText() (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", false
	}
	return parts[0].Text, true
}

// APIError is the error envelope the API returns on non-2xx statuses.
type APIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
