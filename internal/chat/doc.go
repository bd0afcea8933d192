// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat implements the request coordinator for the portfolio assistant.

The coordinator owns the conversation transcript and serializes requests to
the generation backend: at most one request is in flight at any time, and a
second submission while one is pending is rejected rather than queued. Every
accepted submission appends exactly two turns to the transcript: the user
turn at submission, and one assistant turn on completion. When the backend
fails (for any reason: network, non-2xx status, malformed envelope, timeout)
the assistant turn carries a fixed, user-safe fallback message and a generic
notification is raised; raw error detail is logged but never shown.

Responses are tagged with a per-request sequence number. Cancelling bumps the
sequence, so a response that arrives after cancellation is discarded instead
of leaking a stale turn into a newer conversation state.

State machine:

	Idle ──(validated submission)──> InFlight
	InFlight ──(reply | failure | timeout | cancel)──> Idle

The machine cycles for the life of the session; no failure is fatal, and the
user may resubmit immediately after any outcome.
*/
package chat
