// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command for the smartfolio CLI.
//
// Command: chat
// Short:   Start an interactive chat session
//
// Examples:
//   smartfolio chat                          Chat against Gemini directly
//   smartfolio chat --model gemini-2.0-flash-exp
//   smartfolio chat --relay https://portfolio.example.com
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /clear, /c          Clear conversation history
//   /history            Show conversation history
//   /quit, /q           Exit chat
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	chatcore "github.com/Shashank9048/Smart-Portfolio/internal/chat"
	"github.com/Shashank9048/Smart-Portfolio/internal/config"
	"github.com/Shashank9048/Smart-Portfolio/internal/model"
	"github.com/Shashank9048/Smart-Portfolio/internal/util"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt. Non-empty lines
// are added to the navigation history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists input history to file with 0600 permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// RunChat runs the interactive chat REPL against the given responder.
func RunChat(responder chatcore.Responder, cfg *config.Config, args Args) error {
	coordinator := chatcore.New(chatcore.Options{
		Responder: responder,
		Timeout:   cfg.Gemini.Timeout(),
		Notify: func(n chatcore.Notification) {
			fmt.Fprintf(os.Stderr, "%s %s\n", warningStyle.Render("[Notice]"), n.Message)
		},
	})
	coordinator.Greet()

	startTime := time.Now()
	queries := 0

	if !args.Quiet {
		printWelcome(cfg, args)
	}

	input := NewChatCLI()
	defer input.Close()

	for {
		line, err := input.ReadInput(promptStyle.Render("smartfolio> "))
		if err != nil {
			// Ctrl+C (ErrPromptAborted) or Ctrl+D both exit gracefully.
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, liner.ErrNotTerminalOutput) {
				fmt.Println()
			}
			printExitSummary(queries, startTime)
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			cont := handleSlashCommand(line, coordinator)
			if !cont {
				printExitSummary(queries, startTime)
				return nil
			}
			continue
		}

		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			printExitSummary(queries, startTime)
			return nil
		}

		reply, err := coordinator.Submit(context.Background(), line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
			continue
		}
		queries++

		fmt.Println()
		displayResponse(reply.Content)
		fmt.Println()

		if args.Verbose {
			if lastErr := coordinator.LastError(); lastErr != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", warningStyle.Render("[Backend]"), lastErr)
			}
		}
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands. A false return means exit.
func handleSlashCommand(cmd string, coordinator *chatcore.Coordinator) bool {
	switch strings.ToLower(strings.Fields(cmd)[0]) {
	case "/help", "/h", "/?", "/":
		printHelp()
		return true

	case "/clear", "/c":
		coordinator.Reset()
		fmt.Println(commandStyle.Render("[Conversation cleared]"))
		return true

	case "/history":
		printHistory(coordinator.Transcript().Snapshot())
		return true

	case "/quit", "/q", "/exit":
		return false

	default:
		fmt.Fprintf(os.Stderr, "%s unknown command: %s (type /help for commands)\n",
			errorStyle.Render("[Error]"), cmd)
		return true
	}
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

// printWelcome prints the welcome banner.
func printWelcome(cfg *config.Config, args Args) {
	fmt.Println()
	fmt.Println(welcomeStyle.Render("smartfolio interactive chat"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 30)))

	if args.Relay != "" {
		fmt.Printf("%s %s\n",
			infoStyle.Render("Relay:"),
			commandStyle.Render(args.Relay))
	} else {
		fmt.Printf("%s %s\n",
			infoStyle.Render("Model:"),
			commandStyle.Render(cfg.Gemini.Model))
	}

	fmt.Println()
	fmt.Println(infoStyle.Render("Ask about Shashank's projects, skills, and experience."))
	fmt.Println(infoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()
}

// printHelp prints available commands.
func printHelp() {
	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Available Commands"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 20)))
	fmt.Println()

	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/clear, /c", "Clear conversation history"},
		{"/history", "Show conversation history"},
		{"/quit, /q", "Exit chat"},
	}

	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-15s", c.cmd)),
			infoStyle.Render(c.desc))
	}

	fmt.Println()
	fmt.Println(infoStyle.Render("Tip: Ctrl+D exits and saves your input history"))
	fmt.Println()
}

// printHistory prints the conversation transcript, one line per turn.
func printHistory(turns []model.Turn) {
	if len(turns) == 0 {
		fmt.Println(infoStyle.Render("[No messages yet]"))
		return
	}

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Conversation History"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 25)))
	fmt.Println()

	for i, turn := range turns {
		label := turn.Role.DisplayName()
		if turn.Role == model.RoleUser {
			label = promptStyle.Render(label)
		} else {
			label = welcomeStyle.Render(label)
		}

		content := strings.ReplaceAll(turn.Content, "\n", " ")
		content = util.TruncateRunes(content, 100)

		fmt.Printf("  %d. %s: %s\n", i+1, label, content)
	}

	fmt.Println()
}

// printExitSummary prints the session summary on exit.
func printExitSummary(queries int, startTime time.Time) {
	if queries == 0 {
		fmt.Println(infoStyle.Render("Goodbye!"))
		return
	}

	elapsed := time.Since(startTime).Round(time.Second)

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Session Summary"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 15)))
	fmt.Printf("  %s %d\n", infoStyle.Render("Questions:"), queries)
	fmt.Printf("  %s %s\n", infoStyle.Render("Duration:"), elapsed.String())
	fmt.Println()
	fmt.Println(infoStyle.Render("Goodbye!"))
}
