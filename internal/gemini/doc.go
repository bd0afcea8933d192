// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the HTTP client for the Google generative language
// API (generateContent endpoint).
//
// The client performs exactly one request/response cycle per call and
// normalizes the result: the reply text is extracted from the
// candidates[0].content.parts[0].text path of the response envelope, and any
// deviation from that shape is reported as a malformed-response error. No
// automatic retry is performed; the upstream service bills per call and is
// not guaranteed idempotent, so ambiguous failures must not be retried.
package gemini
