// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	chatcore "github.com/Shashank9048/Smart-Portfolio/internal/chat"
	"github.com/Shashank9048/Smart-Portfolio/internal/ui/components"
	"github.com/Shashank9048/Smart-Portfolio/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat widget.
type Model struct {
	theme *styles.Theme

	width  int
	height int

	// Request coordination
	coordinator *chatcore.Coordinator
	notices     chan chatcore.Notification
	busy        bool

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Markdown rendering for assistant replies; nil falls back to plain text
	renderer *glamour.TermRenderer

	// Non-blocking failure notices
	toasts *components.ToastManager
}

// New creates a chat widget backed by responder. The coordinator seeds the
// greeting turn so the conversation never opens on an empty screen.
func New(theme *styles.Theme, responder chatcore.Responder, timeout time.Duration) Model {
	notices := make(chan chatcore.Notification, 8)
	coordinator := chatcore.New(chatcore.Options{
		Responder: responder,
		Timeout:   timeout,
		Notify: func(n chatcore.Notification) {
			select {
			case notices <- n:
			default:
			}
		},
	})
	coordinator.Greet()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about projects, skills, experience..."
	ti.CharLimit = 4000
	ti.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	m := Model{
		theme:       theme,
		coordinator: coordinator,
		notices:     notices,
		viewport:    vp,
		input:       ti,
		spinner:     sp,
		renderer:    newMarkdownRenderer(78),
		toasts:      components.NewToastManager(),
	}
	m.refreshViewport()
	return m
}

// Coordinator exposes the underlying request coordinator.
func (m Model) Coordinator() *chatcore.Coordinator {
	return m.coordinator
}

// newMarkdownRenderer builds a glamour renderer for the given wrap width.
// Returns nil when the terminal style cannot be initialized; callers fall
// back to plain text.
func newMarkdownRenderer(wrap int) *glamour.TermRenderer {
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return r
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, components.ToastTickCmd())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case ClearMsg:
		m.coordinator.Reset()
		m.busy = false
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()
	}

	// Unhandled messages go to the input and viewport for cursor blink,
	// scroll wheel, and similar events.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Header, thinking line, input, and status bar take five rows.
	vpHeight := msg.Height - 5
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = vpHeight
	m.input.Width = msg.Width - 4

	m.renderer = newMarkdownRenderer(msg.Width - 2)
	m.refreshViewport()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.busy {
			// Cancel the in-flight request; the eventual stale reply is
			// discarded by the coordinator.
			m.coordinator.Cancel()
			m.busy = false
			m.toasts.AddInfo("Request cancelled")
			m.refreshViewport()
			return m, nil
		}
		return m, tea.Quit

	case "ctrl+l":
		return m, func() tea.Msg { return ClearMsg{} }

	case "enter":
		if m.busy {
			// One outstanding request at a time; keystrokes still edit
			// the input but submission waits.
			return m, nil
		}
		text := m.input.Value()
		if text == "" {
			return m, nil
		}
		m.input.Reset()
		m.busy = true
		m.refreshViewport()
		return m, tea.Batch(m.submitCmd(text), m.spinner.Tick)

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	// Surface any failure notices raised during the cycle as toasts.
	for {
		select {
		case n := <-m.notices:
			m.toasts.AddError(n.Message)
			continue
		default:
		}
		break
	}

	if msg.Err != nil && !errors.Is(msg.Err, chatcore.ErrCancelled) {
		m.toasts.AddError(msg.Err.Error())
	}

	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, textinput.Blink
}

// =============================================================================
// COMMANDS
// =============================================================================

// submitCmd runs one full request cycle off the UI goroutine. The
// coordinator handles timeout, fallback, and transcript updates.
func (m Model) submitCmd(text string) tea.Cmd {
	coordinator := m.coordinator
	return func() tea.Msg {
		turn, err := coordinator.Submit(context.Background(), text)
		return ReplyMsg{Turn: turn, Err: err}
	}
}

// refreshViewport re-renders the transcript into the viewport and scrolls
// to the newest turn.
func (m *Model) refreshViewport() {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	content := renderTranscript(m.theme, m.renderer, m.coordinator.Transcript().Snapshot(), width)
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}
