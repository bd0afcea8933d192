// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line parsing for smartfolio.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdAsk
	CmdServe
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Model   string
	Relay   string // relay base URL; when set, replies go through the server
	NoColor bool

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Port       int // serve: listen port override (0 = config value)

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `smartfolio - portfolio chat assistant

Smartfolio answers questions about Shashank's projects, skills, and
experience using the Gemini API. Run it as a terminal widget, a quick
REPL, or an HTTP relay for the portfolio site.

Usage:
  smartfolio                  Start the TUI widget (default)
  smartfolio chat             Interactive terminal chat
  smartfolio ask "question"   Ask a single question and exit
  smartfolio serve            Run the HTTP relay server
  smartfolio config [show|path|init]
                              Configuration management
  smartfolio version          Show version information
  smartfolio help             Show this help

Chat Commands (during chat):
  /help, /h           Show available commands
  /clear, /c          Clear conversation history
  /history            Show conversation history
  /quit, /q           Exit chat
  Ctrl+D              Exit chat

Global Flags:
  -q, --quiet         Minimal output
  -v, --verbose       Debug output
  --model NAME        Override the Gemini model
  --relay URL         Send messages through a relay server instead of
                      calling Gemini directly (no local API key needed)
  --no-color          Disable colored output

Serve Flags:
  --port N            Listen port (default: config server.port)

Configuration:
  Config file:  ~/.smart-portfolio/config.toml (created by config init)
  API key:      GEMINI_API_KEY environment variable, or gemini.api_key
                in the config file. The key is never sent to clients.

Examples:
  smartfolio                               Start the widget
  smartfolio ask "What projects has Shashank built?"
  smartfolio chat --model gemini-2.0-flash-exp
  smartfolio chat --relay https://portfolio.example.com
  smartfolio serve --port 8090
  smartfolio config show

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("smartfolio version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

// parse is the testable core of Parse.
func parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui", "widget":
		return CmdTUI, args

	case "chat":
		return CmdChat, args

	case "ask":
		args.Query = strings.Join(positional(remaining), " ")
		return CmdAsk, args

	case "serve", "server":
		parseServeArgs(&args, remaining)
		return CmdServe, args

	case "config":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		// Unknown word: treat the whole line as a question.
		args.Query = strings.Join(append([]string{cmd}, positional(remaining)...), " ")
		return CmdAsk, args
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			args.Quiet = true
		case arg == "-v" || arg == "--verbose":
			args.Verbose = true
		case arg == "--no-color":
			args.NoColor = true
		case arg == "--model" || arg == "-m":
			if i+1 < len(argv) {
				i++
				args.Model = argv[i]
			}
		case strings.HasPrefix(arg, "--model="):
			args.Model = strings.TrimPrefix(arg, "--model=")
		case arg == "--relay":
			if i+1 < len(argv) {
				i++
				args.Relay = argv[i]
			}
		case strings.HasPrefix(arg, "--relay="):
			args.Relay = strings.TrimPrefix(arg, "--relay=")
		case arg == "--port":
			if i+1 < len(argv) {
				i++
				if n, err := strconv.Atoi(argv[i]); err == nil {
					args.Port = n
				}
			}
		case strings.HasPrefix(arg, "--port="):
			if n, err := strconv.Atoi(strings.TrimPrefix(arg, "--port=")); err == nil {
				args.Port = n
			}
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, args
}

// parseServeArgs parses serve command specific arguments.
func parseServeArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--port" && i+1 < len(remaining):
			i++
			if n, err := strconv.Atoi(remaining[i]); err == nil {
				args.Port = n
			}
		case strings.HasPrefix(arg, "--port="):
			if n, err := strconv.Atoi(strings.TrimPrefix(arg, "--port=")); err == nil {
				args.Port = n
			}
		}
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// positional filters out flag-shaped tokens, keeping plain words.
func positional(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if !strings.HasPrefix(t, "-") {
			out = append(out, t)
		}
	}
	return out
}
