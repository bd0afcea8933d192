// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the HTTP client for the Google generative language API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// newTestClient points a client at a test server with a short timeout.
func newTestClient(ts *httptest.Server) *Client {
	return NewClient(&ClientConfig{
		BaseURL: ts.URL,
		Model:   "gemini-2.0-flash-exp",
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
}

// successEnvelope builds a well-formed response body with the given text.
func successEnvelope(text string) GenerateResponse {
	return GenerateResponse{
		Candidates: []Candidate{
			{Content: Content{Parts: []Part{{Text: text}}}},
		},
	}
}

// =============================================================================
// SUCCESS PATH
// =============================================================================

func TestGenerateSuccess(t *testing.T) {
	var gotPath string
	var gotReq GenerateRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("key query param = %q, want 'test-key'", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(successEnvelope("He built five projects including..."))
	}))
	defer ts.Close()

	client := newTestClient(ts)
	reply, err := client.Generate(context.Background(), "composed prompt")
	if err != nil {
		t.Fatalf("Generate error = %v", err)
	}
	if reply != "He built five projects including..." {
		t.Errorf("reply = %q", reply)
	}

	if gotPath != "/models/gemini-2.0-flash-exp:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 {
		t.Fatal("request must carry exactly one content with one part")
	}
	if gotReq.Contents[0].Parts[0].Text != "composed prompt" {
		t.Errorf("prompt text = %q", gotReq.Contents[0].Parts[0].Text)
	}
	if gotReq.GenerationConfig == nil {
		t.Fatal("request missing generationConfig")
	}
	if gotReq.GenerationConfig.MaxOutputTokens != 500 {
		t.Errorf("maxOutputTokens = %d, want 500", gotReq.GenerationConfig.MaxOutputTokens)
	}
	if gotReq.GenerationConfig.TopK != 40 {
		t.Errorf("topK = %d, want 40", gotReq.GenerationConfig.TopK)
	}
}

// =============================================================================
// FAILURE CLASSIFICATION
// =============================================================================

func TestGenerateUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`))
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsUpstream(err) {
		t.Errorf("expected upstream error, got %v", err)
	}

	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Code != http.StatusInternalServerError {
		t.Errorf("upstream error should carry status code 500, got %+v", clientErr)
	}
}

func TestGenerateMalformedEnvelope(t *testing.T) {
	bodies := map[string]string{
		"no candidates":   `{}`,
		"empty candidates": `{"candidates":[]}`,
		"no parts":        `{"candidates":[{"content":{"parts":[]}}]}`,
		"not json":        `garbage`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer ts.Close()

			_, err := newTestClient(ts).Generate(context.Background(), "prompt")
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsMalformed(err) {
				t.Errorf("expected malformed error, got %v", err)
			}
		})
	}
}

func TestGenerateTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused

	_, err := newTestClient(ts).Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsTimeout(err) || IsUpstream(err) || IsMalformed(err) {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(successEnvelope("late"))
	}))
	defer ts.Close()

	client := newTestClient(ts)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

// =============================================================================
// NO-RETRY INVARIANT
// =============================================================================

func TestGenerateDoesNotRetry(t *testing.T) {
	var calls int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Errorf("transport issued %d requests, want exactly 1 (no retries)", n)
	}
}

// =============================================================================
// CONFIG DEFAULTS
// =============================================================================

func TestNewClientFillsDefaults(t *testing.T) {
	client := NewClient(&ClientConfig{APIKey: "k"})
	cfg := client.Config()

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Generation.MaxOutputTokens != 500 {
		t.Errorf("MaxOutputTokens = %d", cfg.Generation.MaxOutputTokens)
	}
}
