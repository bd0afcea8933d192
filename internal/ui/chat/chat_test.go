// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	chatcore "github.com/Shashank9048/Smart-Portfolio/internal/chat"
	"github.com/Shashank9048/Smart-Portfolio/internal/model"
	"github.com/Shashank9048/Smart-Portfolio/internal/ui/styles"
)

type stubResponder struct {
	reply string
	err   error
}

func (s *stubResponder) Respond(_ context.Context, _ []model.Turn, _ string) (string, error) {
	return s.reply, s.err
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(styles.NewTheme(), &stubResponder{reply: "hi"}, time.Second)
}

func TestNewSeedsGreeting(t *testing.T) {
	m := newTestModel(t)

	turns := m.coordinator.Transcript().Snapshot()
	if len(turns) != 1 {
		t.Fatalf("transcript length = %d, want 1", len(turns))
	}
	if turns[0].Role != model.RoleAssistant {
		t.Errorf("greeting role = %q, want assistant", turns[0].Role)
	}
}

func TestRenderTranscriptContainsTurns(t *testing.T) {
	theme := styles.NewTheme()
	turns := []model.Turn{
		{Role: model.RoleUser, Content: "tell me about the projects"},
		{Role: model.RoleAssistant, Content: "Here are the highlights"},
	}

	got := renderTranscript(theme, nil, turns, 80)

	if !strings.Contains(got, "tell me about the projects") {
		t.Errorf("rendered transcript missing user content:\n%s", got)
	}
	if !strings.Contains(got, "Here are the highlights") {
		t.Errorf("rendered transcript missing assistant content:\n%s", got)
	}
	if !strings.Contains(got, "You") {
		t.Errorf("rendered transcript missing user label:\n%s", got)
	}
}

func TestRenderTranscriptEmpty(t *testing.T) {
	got := renderTranscript(styles.NewTheme(), nil, nil, 80)
	if !strings.Contains(got, "No messages yet") {
		t.Errorf("empty transcript render = %q, want placeholder", got)
	}
}

func TestEnterIgnoredWhileBusy(t *testing.T) {
	m := newTestModel(t)
	m.busy = true
	m.input.SetValue("second question")

	updated, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	got := updated.(Model)
	if cmd != nil {
		t.Error("expected no command while a request is outstanding")
	}
	if got.input.Value() != "second question" {
		t.Errorf("input value = %q, want preserved text", got.input.Value())
	}
}

func TestEnterIgnoresEmptyInput(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("")

	updated, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	got := updated.(Model)
	if cmd != nil {
		t.Error("expected no command for an empty submission")
	}
	if got.busy {
		t.Error("model should stay idle on empty input")
	}
}

func TestEnterSubmitsMessage(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("what stack do you use?")

	updated, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	got := updated.(Model)
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	if !got.busy {
		t.Error("model should be busy after submission")
	}
	if got.input.Value() != "" {
		t.Errorf("input value = %q, want cleared", got.input.Value())
	}
}

func TestReplyMsgClearsBusyAndDrainsNotices(t *testing.T) {
	m := newTestModel(t)
	m.busy = true
	m.notices <- chatcore.Notification{Kind: chatcore.NoticeError, Message: "backend unavailable"}

	updated, _ := m.handleReplyForTest(ReplyMsg{Turn: model.Turn{Role: model.RoleAssistant, Content: "ok"}})

	if updated.busy {
		t.Error("model should be idle after a reply")
	}
	if !updated.toasts.HasToasts() {
		t.Error("pending notice should surface as a toast")
	}
}

func TestClearMsgResetsToGreeting(t *testing.T) {
	m := newTestModel(t)
	m.coordinator.Transcript().AppendUser("hello")

	updated, _ := m.Update(ClearMsg{})

	got := updated.(Model)
	turns := got.coordinator.Transcript().Snapshot()
	if len(turns) != 1 {
		t.Fatalf("transcript length after clear = %d, want greeting only", len(turns))
	}
	if turns[0].Content != chatcore.Greeting {
		t.Errorf("turn after clear = %q, want greeting", turns[0].Content)
	}
}

// handleReplyForTest narrows the tea.Model return for assertions.
func (m Model) handleReplyForTest(msg ReplyMsg) (Model, tea.Cmd) {
	updated, cmd := m.handleReply(msg)
	return updated.(Model), cmd
}
