// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, _ := parse(nil)
	if cmd != CmdTUI {
		t.Errorf("parse(nil) = %v, want CmdTUI", cmd)
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"chat"}, CmdChat},
		{[]string{"ask", "hello"}, CmdAsk},
		{[]string{"serve"}, CmdServe},
		{[]string{"server"}, CmdServe},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"--version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"-h"}, CmdHelp},
		{[]string{"tui"}, CmdTUI},
		{[]string{"widget"}, CmdTUI},
	}

	for _, tt := range tests {
		cmd, _ := parse(tt.argv)
		if cmd != tt.want {
			t.Errorf("parse(%v) = %v, want %v", tt.argv, cmd, tt.want)
		}
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := parse([]string{"--quiet", "chat", "--model", "gemini-2.0-flash-exp"})
	if cmd != CmdChat {
		t.Fatalf("cmd = %v, want CmdChat", cmd)
	}
	if !args.Quiet {
		t.Error("Quiet = false, want true")
	}
	if args.Model != "gemini-2.0-flash-exp" {
		t.Errorf("Model = %q, want gemini-2.0-flash-exp", args.Model)
	}
}

func TestParseEqualsFlagForm(t *testing.T) {
	_, args := parse([]string{"chat", "--relay=https://example.com", "--model=flash"})
	if args.Relay != "https://example.com" {
		t.Errorf("Relay = %q, want https://example.com", args.Relay)
	}
	if args.Model != "flash" {
		t.Errorf("Model = %q, want flash", args.Model)
	}
}

func TestParseServePort(t *testing.T) {
	cmd, args := parse([]string{"serve", "--port", "9000"})
	if cmd != CmdServe {
		t.Fatalf("cmd = %v, want CmdServe", cmd)
	}
	if args.Port != 9000 {
		t.Errorf("Port = %d, want 9000", args.Port)
	}
}

func TestParseAskJoinsQuery(t *testing.T) {
	_, args := parse([]string{"ask", "what", "projects", "exist"})
	if args.Query != "what projects exist" {
		t.Errorf("Query = %q, want joined words", args.Query)
	}
}

func TestParseUnknownWordBecomesQuestion(t *testing.T) {
	cmd, args := parse([]string{"what", "is", "this"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk", cmd)
	}
	if args.Query != "what is this" {
		t.Errorf("Query = %q, want 'what is this'", args.Query)
	}
}

func TestParseConfigSubcommand(t *testing.T) {
	_, args := parse([]string{"config", "init"})
	if args.Subcommand != "init" {
		t.Errorf("Subcommand = %q, want init", args.Subcommand)
	}
}
