// smartfolio - portfolio chat assistant for the terminal and the web.
//
// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	chatcore "github.com/Shashank9048/Smart-Portfolio/internal/chat"
	"github.com/Shashank9048/Smart-Portfolio/internal/cli"
	"github.com/Shashank9048/Smart-Portfolio/internal/config"
	"github.com/Shashank9048/Smart-Portfolio/internal/gemini"
	"github.com/Shashank9048/Smart-Portfolio/internal/persona"
	"github.com/Shashank9048/Smart-Portfolio/internal/prompt"
	"github.com/Shashank9048/Smart-Portfolio/internal/relay"
	"github.com/Shashank9048/Smart-Portfolio/internal/server"
	uichat "github.com/Shashank9048/Smart-Portfolio/internal/ui/chat"
	"github.com/Shashank9048/Smart-Portfolio/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyArgOverrides(cfg, args)

	switch cmd {
	case cli.CmdTUI:
		runTUI(cfg, args)

	case cli.CmdChat:
		responder, err := buildResponder(cfg, args)
		if err != nil {
			fatal(err)
		}
		if err := cli.RunChat(responder, cfg, args); err != nil {
			fatal(err)
		}

	case cli.CmdAsk:
		responder, err := buildResponder(cfg, args)
		if err != nil {
			fatal(err)
		}
		if err := cli.RunAsk(responder, cfg, args); err != nil {
			fatal(err)
		}

	case cli.CmdServe:
		runServe(cfg, args)

	case cli.CmdConfig:
		if err := cli.RunConfig(cfg, args); err != nil {
			fatal(err)
		}

	case cli.CmdVersion:
		cli.PrintVersion()

	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// applyArgOverrides layers CLI flags over the loaded configuration.
func applyArgOverrides(cfg *config.Config, args cli.Args) {
	if args.Model != "" {
		cfg.Gemini.Model = args.Model
	}
	if args.Relay != "" {
		cfg.Chat.RelayURL = args.Relay
	}
	if args.Port > 0 {
		cfg.Server.Port = args.Port
	}
}

// buildResponder wires the reply pipeline. With a relay URL configured the
// binary talks to a relay server and needs no local API key; otherwise it
// calls Gemini directly with the shared persona and prompt composer.
func buildResponder(cfg *config.Config, args cli.Args) (chatcore.Responder, error) {
	if cfg.Chat.RelayURL != "" {
		return relay.NewClient(cfg.Chat.RelayURL, cfg.Gemini.Timeout()), nil
	}

	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("no Gemini API key configured; set GEMINI_API_KEY or run: smartfolio config init")
	}

	return buildDirectResponder(cfg)
}

// buildDirectResponder builds the Gemini-backed responder used by the CLI
// modes and the relay server.
func buildDirectResponder(cfg *config.Config) (chatcore.Responder, error) {
	personaText := persona.Default()
	if cfg.Chat.PersonaFile != "" {
		loaded, err := persona.Load(cfg.Chat.PersonaFile)
		if err != nil {
			return nil, fmt.Errorf("load persona: %w", err)
		}
		personaText = loaded
	}

	clientCfg := cfg.Gemini.ClientConfig()
	client := gemini.NewClient(&clientCfg)
	composer := prompt.NewComposer(personaText, cfg.Chat.ContextWindow)
	return chatcore.NewDirectResponder(client, composer), nil
}

// runTUI starts the full-screen chat widget.
func runTUI(cfg *config.Config, args cli.Args) {
	responder, err := buildResponder(cfg, args)
	if err != nil {
		fatal(err)
	}

	model := uichat.New(styles.NewTheme(), responder, cfg.Gemini.Timeout())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

// runServe starts the HTTP relay and blocks until SIGINT/SIGTERM.
func runServe(cfg *config.Config, args cli.Args) {
	// The relay holds the credential; it always calls Gemini directly.
	if cfg.Gemini.APIKey == "" {
		fatal(fmt.Errorf("serve requires a Gemini API key; set GEMINI_API_KEY or gemini.api_key in the config file"))
	}

	responder, err := buildDirectResponder(cfg)
	if err != nil {
		fatal(err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	srv := server.New(cfg.Server, responder, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			fatal(err)
		}
	case sig := <-sigCh:
		logger.Printf("SERVER_STOP | signal=%s", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fatal(err)
		}
	}
}
