// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Shashank9048/Smart-Portfolio/internal/model"
	"github.com/Shashank9048/Smart-Portfolio/internal/ui/components"
	"github.com/Shashank9048/Smart-Portfolio/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the widget.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderThinking())
	b.WriteString("\n")
	b.WriteString(m.theme.InputContainer.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	view := b.String()

	if m.toasts.HasToasts() {
		stack := components.RenderToastStack(m.theme, m.toasts.Toasts(), m.width)
		view = stack + "\n" + view
	}
	return view
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Shashank's AI Assistant")
	subtitle := m.theme.HeaderSubtitle.Render("projects · skills · experience")
	return m.theme.Header.Width(m.width - 2).Render(title + "  " + subtitle)
}

func (m Model) renderThinking() string {
	if !m.busy {
		return ""
	}
	return "  " + m.spinner.View() + " " + m.theme.ThinkingText.Render("Thinking...")
}

func (m Model) renderStatusBar() string {
	hints := []string{
		m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" send"),
		m.theme.ShortcutKey.Render("esc") + m.theme.ShortcutDesc.Render(" cancel"),
		m.theme.ShortcutKey.Render("ctrl+l") + m.theme.ShortcutDesc.Render(" clear"),
		m.theme.ShortcutKey.Render("ctrl+c") + m.theme.ShortcutDesc.Render(" quit"),
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(hints, "  "))
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// renderTranscript renders the conversation turns for the viewport. Assistant
// turns go through the markdown renderer when one is available; user turns
// stay plain so pasted text is shown verbatim.
func renderTranscript(theme *styles.Theme, renderer *glamour.TermRenderer, turns []model.Turn, width int) string {
	if len(turns) == 0 {
		return theme.ThinkingText.Render("No messages yet. Say hello!")
	}

	bubbleWidth := width - 6
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderTurn(theme, renderer, turn, bubbleWidth))
		b.WriteString("\n")
	}
	return b.String()
}

func renderTurn(theme *styles.Theme, renderer *glamour.TermRenderer, turn model.Turn, width int) string {
	label := theme.AssistantLabel
	bubble := theme.AssistantBubble
	if turn.Role == model.RoleUser {
		label = theme.UserLabel
		bubble = theme.UserBubble
	}

	header := label.Render(turn.Role.DisplayName())
	if !turn.Timestamp.IsZero() {
		header += " " + theme.Timestamp.Render(turn.Timestamp.Format("15:04"))
	}

	content := turn.Content
	if turn.Role == model.RoleAssistant && renderer != nil {
		if rendered, err := renderer.Render(content); err == nil {
			content = strings.TrimRight(rendered, "\n")
		}
	}

	body := bubble.MaxWidth(width).Render(content)
	return fmt.Sprintf("%s\n%s", header, body)
}
