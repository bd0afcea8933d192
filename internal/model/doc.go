// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat turns and transcripts.
//
// A Turn is one message in the conversation, tagged with the speaker role and
// a creation timestamp. A Transcript is the ordered, append-only history of
// Turns for a single chat session. Turns are immutable once created and the
// transcript is never reordered or edited in place.
package model
