// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt builds the outbound request text sent to the generation API.
package prompt

import (
	"strconv"
	"strings"
	"testing"

	"github.com/Shashank9048/Smart-Portfolio/internal/model"
)

const testPersona = "You are an AI assistant for a portfolio website."

func TestComposeEmptyTranscript(t *testing.T) {
	c := NewComposer(testPersona, DefaultWindow)

	got := c.Compose(nil, "What projects has he built?")
	want := testPersona + "\nUser: What projects has he built?\nAssistant:"

	if got != want {
		t.Errorf("Compose = %q, want %q", got, want)
	}
}

func TestComposeIncludesFullPersona(t *testing.T) {
	c := NewComposer(testPersona, 4)

	history := []model.Turn{
		model.NewUserTurn("hi"),
		model.NewAssistantTurn("hello"),
	}

	got := c.Compose(history, "tell me more")
	if !strings.HasPrefix(got, testPersona) {
		t.Error("composed prompt must start with the full persona context")
	}
}

func TestComposeRendersRoleLabels(t *testing.T) {
	c := NewComposer(testPersona, 4)

	history := []model.Turn{
		model.NewUserTurn("what skills does he have?"),
		model.NewAssistantTurn("Java, C++, and more."),
	}

	got := c.Compose(history, "and projects?")

	if !strings.Contains(got, "Recent conversation:") {
		t.Error("prompt missing 'Recent conversation:' block")
	}
	if !strings.Contains(got, "\nUser: what skills does he have?") {
		t.Error("prompt missing rendered user turn")
	}
	if !strings.Contains(got, "\nAssistant: Java, C++, and more.") {
		t.Error("prompt missing rendered assistant turn")
	}
	if !strings.HasSuffix(got, "\nUser: and projects?\nAssistant:") {
		t.Errorf("prompt must end with the new utterance and empty assistant marker, got %q", got[len(got)-60:])
	}
}

func TestComposeBoundsWindow(t *testing.T) {
	const window = 4
	c := NewComposer(testPersona, window)

	// 20-turn transcript; only the last 4 may appear.
	history := make([]model.Turn, 0, 20)
	for i := 0; i < 20; i++ {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		history = append(history, model.NewTurn(role, "turn-"+strconv.Itoa(i)))
	}

	got := c.Compose(history, "latest question")

	for i := 0; i < 16; i++ {
		if strings.Contains(got, "turn-"+strconv.Itoa(i)+"\n") || strings.HasSuffix(got, "turn-"+strconv.Itoa(i)) {
			t.Errorf("prompt contains turn-%d, outside the %d-turn window", i, window)
		}
	}
	for i := 16; i < 20; i++ {
		if !strings.Contains(got, "turn-"+strconv.Itoa(i)) {
			t.Errorf("prompt missing turn-%d, inside the %d-turn window", i, window)
		}
	}
}

func TestComposeWindowSmallerThanHistory(t *testing.T) {
	c := NewComposer(testPersona, 2)

	history := []model.Turn{
		model.NewUserTurn("a"),
		model.NewAssistantTurn("b"),
		model.NewUserTurn("c"),
	}

	got := c.Compose(history, "d")

	if strings.Contains(got, "User: a") {
		t.Error("oldest turn should be outside the window")
	}
	if !strings.Contains(got, "Assistant: b") || !strings.Contains(got, "User: c") {
		t.Error("window should contain the two most recent turns")
	}
}

func TestNewComposerDefaultWindow(t *testing.T) {
	c := NewComposer(testPersona, 0)
	if c.Window() != DefaultWindow {
		t.Errorf("Window = %d, want %d", c.Window(), DefaultWindow)
	}

	c = NewComposer(testPersona, -3)
	if c.Window() != DefaultWindow {
		t.Errorf("Window = %d, want %d", c.Window(), DefaultWindow)
	}
}
