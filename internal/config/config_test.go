// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Shashank9048/Smart-Portfolio/internal/gemini"
	"github.com/Shashank9048/Smart-Portfolio/internal/prompt"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Gemini.Model != gemini.DefaultModel {
		t.Errorf("Gemini.Model = %q, want %q", cfg.Gemini.Model, gemini.DefaultModel)
	}
	if cfg.Gemini.BaseURL != gemini.DefaultBaseURL {
		t.Errorf("Gemini.BaseURL = %q, want %q", cfg.Gemini.BaseURL, gemini.DefaultBaseURL)
	}
	if cfg.Gemini.APIKey != "" {
		t.Error("default config must not carry an API key")
	}
	if cfg.Gemini.MaxOutputTokens != 500 {
		t.Errorf("MaxOutputTokens = %d, want 500", cfg.Gemini.MaxOutputTokens)
	}
	if cfg.Chat.ContextWindow != prompt.DefaultWindow {
		t.Errorf("ContextWindow = %d, want %d", cfg.Chat.ContextWindow, prompt.DefaultWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Gemini.APIKey = "test-key-123"
	cfg.Gemini.Model = "gemini-custom"
	cfg.Chat.ContextWindow = 10
	cfg.Server.Port = 9001

	if err := SaveFile(cfg, path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat saved config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}

	loaded := Default()
	if err := LoadFile(loaded, path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Gemini.APIKey != "test-key-123" {
		t.Errorf("APIKey = %q, want test-key-123", loaded.Gemini.APIKey)
	}
	if loaded.Gemini.Model != "gemini-custom" {
		t.Errorf("Model = %q, want gemini-custom", loaded.Gemini.Model)
	}
	if loaded.Chat.ContextWindow != 10 {
		t.Errorf("ContextWindow = %d, want 10", loaded.Chat.ContextWindow)
	}
	if loaded.Server.Port != 9001 {
		t.Errorf("Port = %d, want 9001", loaded.Server.Port)
	}
}

func TestLoadFileFixesPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("version = \"1.0\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions after load = %o, want 0600", perm)
	}
}

func TestSetDefaultsFillsPartialConfig(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.Gemini.Model != gemini.DefaultModel {
		t.Errorf("Model = %q, want default", cfg.Gemini.Model)
	}
	if cfg.Gemini.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want 30", cfg.Gemini.TimeoutSecs)
	}
	if cfg.Chat.ContextWindow != prompt.DefaultWindow {
		t.Errorf("ContextWindow = %d, want %d", cfg.Chat.ContextWindow, prompt.DefaultWindow)
	}
	if cfg.Server.AllowedOrigin != "*" {
		t.Errorf("AllowedOrigin = %q, want *", cfg.Server.AllowedOrigin)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad base url", func(c *Config) { c.Gemini.BaseURL = "not a url" }, "gemini.base_url"},
		{"empty model", func(c *Config) { c.Gemini.Model = "" }, "gemini.model"},
		{"timeout too large", func(c *Config) { c.Gemini.TimeoutSecs = 999 }, "gemini.timeout_secs"},
		{"negative temperature", func(c *Config) { c.Gemini.Temperature = -1 }, "gemini.temperature"},
		{"top_p above one", func(c *Config) { c.Gemini.TopP = 1.5 }, "gemini.top_p"},
		{"zero window", func(c *Config) { c.Chat.ContextWindow = 0 }, "chat.context_window"},
		{"bad relay url", func(c *Config) { c.Chat.RelayURL = "::bad" }, "chat.relay_url"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"unknown theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention field %s", err.Error(), tt.field)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PORTFOLIO_MODEL", "gemini-env-model")
	t.Setenv("PORTFOLIO_RELAY_URL", "http://localhost:9999")
	t.Setenv("PORTFOLIO_PORT", "8123")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Gemini.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "gemini-env-model" {
		t.Errorf("Model = %q, want gemini-env-model", cfg.Gemini.Model)
	}
	if cfg.Chat.RelayURL != "http://localhost:9999" {
		t.Errorf("RelayURL = %q", cfg.Chat.RelayURL)
	}
	if cfg.Server.Port != 8123 {
		t.Errorf("Port = %d, want 8123", cfg.Server.Port)
	}
}

func TestApplyEnvOverridesIgnoresEmpty(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg := Default()
	cfg.Gemini.APIKey = "file-key"
	cfg.ApplyEnvOverrides()

	if cfg.Gemini.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key preserved", cfg.Gemini.APIKey)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := Default()

	if got := cfg.Gemini.Timeout(); got != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", got)
	}
	if got := cfg.Server.ListenAddr(); got != ":8090" {
		t.Errorf("ListenAddr() = %q, want :8090", got)
	}

	cc := cfg.Gemini.ClientConfig()
	if cc.Model != gemini.DefaultModel {
		t.Errorf("ClientConfig().Model = %q", cc.Model)
	}
	if cc.Generation.MaxOutputTokens != 500 {
		t.Errorf("ClientConfig().Generation.MaxOutputTokens = %d", cc.Generation.MaxOutputTokens)
	}
}
