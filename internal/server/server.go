// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Shashank9048/Smart-Portfolio/internal/chat"
	"github.com/Shashank9048/Smart-Portfolio/internal/config"
	"github.com/Shashank9048/Smart-Portfolio/internal/relay"
	"github.com/Shashank9048/Smart-Portfolio/internal/util"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// Version is the relay server version.
	Version = "1.0.0"

	// genericErrorDetails is the only failure detail a client ever sees.
	// Raw upstream errors stay in the server log.
	genericErrorDetails = "Failed to process chat message"
)

// ============================================================================
// SERVER
// ============================================================================

// Server is the HTTP relay server.
type Server struct {
	cfg       config.ServerConfig
	responder chat.Responder
	router    *http.ServeMux
	server    *http.Server
	logger    *log.Logger
}

// New creates a relay server. The responder performs the actual prompt
// composition and Gemini call, so tests can substitute a fake backend.
func New(cfg config.ServerConfig, responder chat.Responder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:       cfg,
		responder: responder,
		router:    http.NewServeMux(),
		logger:    logger,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("POST /api/chat", s.handleChat)
	s.router.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return Chain(
		RecoveryMiddleware(s.logger),
		LoggingMiddleware(s.logger),
		CORSMiddleware(s.cfg.AllowedOrigin),
	)(s.router)
}

// ============================================================================
// CHAT HANDLER
// ============================================================================

// handleChat handles POST /api/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req relay.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			s.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body exceeds maximum size of %d bytes", s.cfg.MaxBodyBytes))
			return
		}
		// Log full details internally, return a generic message to the client.
		s.logger.Printf("BAD_REQUEST | invalid body: %v", err)
		s.writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		s.writeError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}
	if len([]rune(message)) > s.cfg.MaxMessageChars {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Message exceeds maximum length of %d characters", s.cfg.MaxMessageChars))
		return
	}
	if len(req.ConversationHistory) > s.cfg.MaxHistoryTurns {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Too many history entries: maximum is %d", s.cfg.MaxHistoryTurns))
		return
	}

	history, err := relay.TurnsFromHistory(req.ConversationHistory)
	if err != nil {
		s.logger.Printf("BAD_REQUEST | %v", err)
		s.writeError(w, http.StatusBadRequest, "Invalid message format. Roles must be user or assistant")
		return
	}

	start := time.Now()
	reply, err := s.responder.Respond(r.Context(), history, message)
	if err != nil {
		s.logger.Printf("CHAT_ERROR | query=%s error=%v", util.TruncateRunes(message, 50), err)
		s.writeJSON(w, http.StatusInternalServerError, relay.ErrorResponse{
			Error:   "Internal server error",
			Details: genericErrorDetails,
		})
		return
	}

	s.logger.Printf("CHAT_COMPLETE | history=%d latency=%dms",
		len(history), time.Since(start).Milliseconds())

	updated := append(req.ConversationHistory,
		relay.HistoryEntry{Role: "user", Content: message},
		relay.HistoryEntry{Role: "assistant", Content: reply},
	)
	s.writeJSON(w, http.StatusOK, relay.ChatResponse{
		Response:            reply,
		ConversationHistory: updated,
	})
}

// ============================================================================
// HEALTH HANDLER
// ============================================================================

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.cfg.ListenAddr()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.logger.Printf("SERVER_START | addr=%s version=%s", addr, Version)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Printf("SERVER_SHUTDOWN | starting graceful shutdown")
	return s.server.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, relay.ErrorResponse{
		Error:   message,
		Details: http.StatusText(status),
	})
}
