// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the request coordinator for the portfolio assistant.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Shashank9048/Smart-Portfolio/internal/model"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// DefaultTimeout bounds how long a request may stay in flight before the
// coordinator gives up and appends the fallback turn. The upstream call has
// no retry, so this is the only thing standing between a hung connection and
// an unbounded pending state.
const DefaultTimeout = 30 * time.Second

// FallbackReply is the fixed assistant turn appended when a request fails.
const FallbackReply = "I apologize, but I'm experiencing some technical difficulties. Please try asking your question again in a moment."

// Greeting is the assistant turn seeded into an empty transcript when the
// widget opens.
const Greeting = "👋 Hello! I'm Shashank's AI assistant powered by Gemini. I can tell you about his projects, skills, experience, and achievements. What would you like to know?"

// errorNotice is the generic user-visible notification text for any failure.
// Raw error detail never reaches the user.
const errorNotice = "Sorry, I'm having trouble responding right now. Please try again."

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyMessage rejects submissions that are empty after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrBusy rejects submissions while a request is already in flight.
	ErrBusy = errors.New("a request is already in flight")

	// ErrCancelled reports that the request was cancelled before its
	// response arrived; the response was discarded.
	ErrCancelled = errors.New("request cancelled")
)

// =============================================================================
// RESPONDER INTERFACE
// =============================================================================

// Responder produces one assistant reply for a new user message given the
// conversation history so far. The direct Gemini adapter and the relay
// client both implement it.
type Responder interface {
	Respond(ctx context.Context, history []model.Turn, message string) (string, error)
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// NotificationKind classifies a user-visible notification.
type NotificationKind int

const (
	// NoticeError signals a failed request cycle.
	NoticeError NotificationKind = iota
)

// Notification is a user-visible event raised outside the transcript,
// rendered by the UI as a toast or printed banner.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// NotifyFunc receives notifications. It is called from the submitting
// goroutine, outside the coordinator's lock.
type NotifyFunc func(Notification)

// =============================================================================
// STATE
// =============================================================================

// State represents the coordinator's request state.
type State int

const (
	// StateIdle means no request is outstanding; submissions are accepted.
	StateIdle State = iota
	// StateInFlight means a request is outstanding; submissions are rejected.
	StateInFlight
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in-flight"
	default:
		return "unknown"
	}
}

// =============================================================================
// COORDINATOR
// =============================================================================

// Coordinator serializes chat requests against a Responder and owns the
// session transcript.
type Coordinator struct {
	mu      sync.Mutex
	state   State
	seq     uint64
	cancel  context.CancelFunc
	lastErr error

	transcript *model.Transcript
	responder  Responder
	timeout    time.Duration
	notify     NotifyFunc
}

// Options configures a Coordinator.
type Options struct {
	// Responder produces assistant replies. Required.
	Responder Responder

	// Transcript to append to. A fresh one is created when nil.
	Transcript *model.Transcript

	// Timeout per request (default: DefaultTimeout).
	Timeout time.Duration

	// Notify receives user-visible notifications. Optional.
	Notify NotifyFunc
}

// New creates a Coordinator in the Idle state.
func New(opts Options) *Coordinator {
	if opts.Transcript == nil {
		opts.Transcript = model.NewTranscript()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Coordinator{
		state:      StateIdle,
		transcript: opts.Transcript,
		responder:  opts.Responder,
		timeout:    opts.Timeout,
		notify:     opts.Notify,
	}
}

// Transcript returns the session transcript.
func (c *Coordinator) Transcript() *model.Transcript {
	return c.transcript
}

// State returns the current request state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the underlying error of the most recent failed cycle,
// for diagnostics. It is nil after a successful cycle.
func (c *Coordinator) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Greet seeds an empty transcript with the assistant greeting. It does
// nothing when the transcript already has turns.
func (c *Coordinator) Greet() {
	if c.transcript.Len() == 0 {
		c.transcript.AppendAssistant(Greeting)
	}
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Submit runs one full request cycle and blocks until the resulting
// assistant turn (reply or fallback) has been appended.
//
// The returned error is non-nil only for rejected or cancelled submissions
// (ErrEmptyMessage, ErrBusy, ErrCancelled); backend failures are absorbed
// into the fallback turn and a notification, and Submit returns that turn
// with a nil error. Callers that need the raw failure can read LastError.
func (c *Coordinator) Submit(ctx context.Context, text string) (model.Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Turn{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.state == StateInFlight {
		c.mu.Unlock()
		return model.Turn{}, ErrBusy
	}
	c.state = StateInFlight
	c.seq++
	seq := c.seq

	// The composer receives the history as it was before this submission;
	// the new utterance is passed separately and rendered last.
	history := c.transcript.Snapshot()
	c.transcript.AppendUser(text)

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	c.cancel = cancel
	c.mu.Unlock()

	reply, err := c.responder.Respond(reqCtx, history, text)
	cancel()

	c.mu.Lock()
	if seq != c.seq {
		// Cancelled while in flight; a newer conversation state exists and
		// this response must not leak into it.
		c.mu.Unlock()
		return model.Turn{}, ErrCancelled
	}
	c.cancel = nil

	// The assistant turn is appended before the state returns to Idle so a
	// racing submission can never observe the half-written cycle.
	var turn model.Turn
	if err != nil {
		c.lastErr = err
		turn = c.transcript.AppendAssistant(FallbackReply)
	} else {
		c.lastErr = nil
		turn = c.transcript.AppendAssistant(reply)
	}
	c.state = StateIdle
	c.mu.Unlock()

	if err != nil {
		log.Printf("CHAT_ERROR | %v", err)
		if c.notify != nil {
			c.notify(Notification{Kind: NoticeError, Message: errorNotice})
		}
	}
	return turn, nil
}

// Cancel aborts the in-flight request, if any. The pending response is
// discarded when it eventually arrives; no assistant turn is appended for
// the aborted cycle. Cancel is a no-op while idle.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInFlight {
		return
	}
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = StateIdle
}

// Reset cancels any in-flight request, clears the transcript, and reseeds
// the greeting. This is the full session reset behind the /clear command.
func (c *Coordinator) Reset() {
	c.Cancel()
	c.transcript.Reset()
	c.Greet()
}
