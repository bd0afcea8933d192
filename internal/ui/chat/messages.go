// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/Shashank9048/Smart-Portfolio/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ReplyMsg is delivered when a submitted request finishes. The assistant
// turn is already in the transcript by the time this arrives; Err is only
// set for rejections (empty input, busy, cancelled), never for backend
// failures, which the coordinator absorbs into a fallback turn.
type ReplyMsg struct {
	Turn model.Turn
	Err  error
}

// ClearMsg requests wiping the conversation back to the greeting.
type ClearMsg struct{}
