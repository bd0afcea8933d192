// Copyright (c) 2025 Shashank Singh
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Shashank9048/Smart-Portfolio/internal/gemini"
	"github.com/Shashank9048/Smart-Portfolio/internal/prompt"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete assistant configuration.
type Config struct {
	Version string `toml:"version"`

	// Gemini backend configuration
	Gemini GeminiConfig `toml:"gemini"`

	// Chat behavior configuration
	Chat ChatConfig `toml:"chat"`

	// Relay server configuration
	Server ServerConfig `toml:"server"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// GeminiConfig contains the Gemini API connection settings.
type GeminiConfig struct {
	// APIKey is the Gemini API key. Overridable via GEMINI_API_KEY.
	// Never committed to source; the config file is written 0600.
	APIKey string `toml:"api_key"`
	// BaseURL is the generative language API base URL.
	BaseURL string `toml:"base_url"`
	// Model is the Gemini model name.
	Model string `toml:"model"`
	// TimeoutSecs bounds a single generate request in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
	// MaxOutputTokens caps the reply length.
	MaxOutputTokens int `toml:"max_output_tokens"`
	// Temperature, TopP, TopK are sampling parameters.
	Temperature float64 `toml:"temperature"`
	TopP        float64 `toml:"top_p"`
	TopK        int     `toml:"top_k"`
}

// ChatConfig contains conversation behavior settings.
type ChatConfig struct {
	// ContextWindow is how many recent turns are replayed into each prompt.
	ContextWindow int `toml:"context_window"`
	// PersonaFile optionally overrides the built-in persona text.
	PersonaFile string `toml:"persona_file"`
	// RelayURL, when set, routes chat through a relay server instead of
	// calling Gemini directly. Overridable via PORTFOLIO_RELAY_URL.
	RelayURL string `toml:"relay_url"`
}

// ServerConfig contains relay server settings.
type ServerConfig struct {
	// Port is the listen port for `serve` mode.
	Port int `toml:"port"`
	// Host is the bind address. Default binds all interfaces.
	Host string `toml:"host"`
	// AllowedOrigin is the CORS allow-origin value. "*" by default since the
	// relay holds the credential and serves a public site widget.
	AllowedOrigin string `toml:"allowed_origin"`
	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
	// MaxMessageChars caps a single user message.
	MaxMessageChars int `toml:"max_message_chars"`
	// MaxHistoryTurns caps the history a client may submit.
	MaxHistoryTurns int `toml:"max_history_turns"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is the color theme: "dark", "light", or "auto".
	Theme string `toml:"theme"`
	// Markdown enables glamour rendering of assistant replies.
	Markdown bool `toml:"markdown"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Gemini: GeminiConfig{
			BaseURL:         gemini.DefaultBaseURL,
			Model:           gemini.DefaultModel,
			TimeoutSecs:     30,
			MaxOutputTokens: 500,
			Temperature:     0.7,
			TopP:            0.8,
			TopK:            40,
		},
		Chat: ChatConfig{
			ContextWindow: prompt.DefaultWindow,
		},
		Server: ServerConfig{
			Port:            8090,
			Host:            "",
			AllowedOrigin:   "*",
			MaxBodyBytes:    64 * 1024,
			MaxMessageChars: 4000,
			MaxHistoryTurns: 50,
		},
		UI: UIConfig{
			Theme:    "auto",
			Markdown: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the assistant configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".smart-portfolio"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on the config file.
// SECURITY: The file holds the API key, so anything other than 0600 is fixed.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when no file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if err := LoadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile loads configuration from a TOML file into cfg.
// SECURITY: Checks and fixes file permissions on load.
func LoadFile(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// Save saves the configuration to the default TOML file.
// SECURITY: Creates the file with 0600 permissions (owner read/write only).
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(cfg, path)
}

// SaveFile saves the configuration to a TOML file at path.
func SaveFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Ensure permissions are correct even if the file already existed.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# Smart-Portfolio assistant configuration")
	fmt.Fprintln(file, "# This file may contain an API key - keep permissions at 0600")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// DEFAULTS FILL
// =============================================================================

// SetDefaults fills zero-valued fields with defaults. Called after load so a
// partial config file still produces a usable configuration.
func (c *Config) SetDefaults() {
	def := Default()

	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = def.Gemini.BaseURL
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = def.Gemini.Model
	}
	if c.Gemini.TimeoutSecs <= 0 {
		c.Gemini.TimeoutSecs = def.Gemini.TimeoutSecs
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		c.Gemini.MaxOutputTokens = def.Gemini.MaxOutputTokens
	}
	if c.Gemini.Temperature <= 0 {
		c.Gemini.Temperature = def.Gemini.Temperature
	}
	if c.Gemini.TopP <= 0 {
		c.Gemini.TopP = def.Gemini.TopP
	}
	if c.Gemini.TopK <= 0 {
		c.Gemini.TopK = def.Gemini.TopK
	}
	if c.Chat.ContextWindow <= 0 {
		c.Chat.ContextWindow = def.Chat.ContextWindow
	}
	if c.Server.Port <= 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.AllowedOrigin == "" {
		c.Server.AllowedOrigin = def.Server.AllowedOrigin
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = def.Server.MaxBodyBytes
	}
	if c.Server.MaxMessageChars <= 0 {
		c.Server.MaxMessageChars = def.Server.MaxMessageChars
	}
	if c.Server.MaxHistoryTurns <= 0 {
		c.Server.MaxHistoryTurns = def.Server.MaxHistoryTurns
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Gemini.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "gemini.base_url",
			Message: fmt.Sprintf("invalid URL '%s'", c.Gemini.BaseURL),
		})
	}
	if c.Gemini.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "gemini.model",
			Message: "model name cannot be empty",
		})
	}
	if c.Gemini.TimeoutSecs < 1 || c.Gemini.TimeoutSecs > 300 {
		errs = append(errs, ValidationError{
			Field:   "gemini.timeout_secs",
			Message: fmt.Sprintf("timeout %d out of range 1-300", c.Gemini.TimeoutSecs),
		})
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "gemini.temperature",
			Message: fmt.Sprintf("temperature %.2f out of range 0-2", c.Gemini.Temperature),
		})
	}
	if c.Gemini.TopP < 0 || c.Gemini.TopP > 1 {
		errs = append(errs, ValidationError{
			Field:   "gemini.top_p",
			Message: fmt.Sprintf("top_p %.2f out of range 0-1", c.Gemini.TopP),
		})
	}
	if c.Chat.ContextWindow < 1 || c.Chat.ContextWindow > 100 {
		errs = append(errs, ValidationError{
			Field:   "chat.context_window",
			Message: fmt.Sprintf("context window %d out of range 1-100", c.Chat.ContextWindow),
		})
	}
	if c.Chat.RelayURL != "" {
		if u, err := url.Parse(c.Chat.RelayURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "chat.relay_url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Chat.RelayURL),
			})
		}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port %d out of range 1-65535", c.Server.Port),
		})
	}
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - GEMINI_API_KEY: overrides gemini.api_key
//   - PORTFOLIO_MODEL: overrides gemini.model
//   - PORTFOLIO_RELAY_URL: overrides chat.relay_url
//   - PORTFOLIO_PORT: overrides server.port
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
	if model := os.Getenv("PORTFOLIO_MODEL"); model != "" {
		c.Gemini.Model = model
	}
	if relay := os.Getenv("PORTFOLIO_RELAY_URL"); relay != "" {
		c.Chat.RelayURL = relay
	}
	if port := os.Getenv("PORTFOLIO_PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil && p > 0 {
			c.Server.Port = p
		}
	}
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Timeout returns the Gemini request timeout as a duration.
func (c *GeminiConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ListenAddr returns the server bind address in host:port form.
func (c *ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ClientConfig builds the Gemini client configuration.
func (c *GeminiConfig) ClientConfig() gemini.ClientConfig {
	return gemini.ClientConfig{
		BaseURL: c.BaseURL,
		Model:   c.Model,
		APIKey:  c.APIKey,
		Timeout: c.Timeout(),
		Generation: gemini.GenerationConfig{
			MaxOutputTokens: c.MaxOutputTokens,
			Temperature:     c.Temperature,
			TopP:            c.TopP,
			TopK:            c.TopK,
		},
	}
}
