// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command for the smartfolio CLI.
//
// Command: config
// Short:   Show or initialize the configuration
//
// Examples:
//   smartfolio config show     Show the effective configuration
//   smartfolio config path     Print the config file location
//   smartfolio config init     Write a default config file
package cli

import (
	"fmt"
	"os"

	"github.com/Shashank9048/Smart-Portfolio/internal/config"
)

// RunConfig handles the config command.
func RunConfig(cfg *config.Config, args Args) error {
	switch args.Subcommand {
	case "", "show":
		printConfig(cfg)
		return nil

	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return fmt.Errorf("config path: %w", err)
		}
		fmt.Println(path)
		return nil

	case "init":
		return initConfig()

	default:
		return fmt.Errorf("unknown config subcommand %q (want show, path, or init)", args.Subcommand)
	}
}

// printConfig displays the effective configuration. The API key is shown
// only as present or missing, never echoed.
func printConfig(cfg *config.Config) {
	keyStatus := warningStyle.Render("not set")
	if cfg.Gemini.APIKey != "" {
		keyStatus = commandStyle.Render("set")
	}

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Configuration"))
	fmt.Println()
	fmt.Printf("  %s %s\n", infoStyle.Render("Model:"), cfg.Gemini.Model)
	fmt.Printf("  %s %s\n", infoStyle.Render("Base URL:"), cfg.Gemini.BaseURL)
	fmt.Printf("  %s %s\n", infoStyle.Render("API key:"), keyStatus)
	fmt.Printf("  %s %ds\n", infoStyle.Render("Timeout:"), cfg.Gemini.TimeoutSecs)
	fmt.Printf("  %s %d turns\n", infoStyle.Render("Context window:"), cfg.Chat.ContextWindow)
	if cfg.Chat.RelayURL != "" {
		fmt.Printf("  %s %s\n", infoStyle.Render("Relay URL:"), cfg.Chat.RelayURL)
	}
	fmt.Printf("  %s %s\n", infoStyle.Render("Server addr:"), cfg.Server.ListenAddr())
	fmt.Printf("  %s %s\n", infoStyle.Render("CORS origin:"), cfg.Server.AllowedOrigin)
	fmt.Println()
}

// initConfig writes a default config file unless one already exists.
func initConfig() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("config init: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := config.Save(config.Default()); err != nil {
		return fmt.Errorf("config init: %w", err)
	}

	fmt.Printf("%s wrote %s\n", commandStyle.Render("[OK]"), path)
	fmt.Println(infoStyle.Render("Set gemini.api_key in the file or export GEMINI_API_KEY."))
	return nil
}
