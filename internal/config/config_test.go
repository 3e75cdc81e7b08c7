package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Nav.ActivationMargin != 200 {
		t.Errorf("expected default activation margin 200, got %d", cfg.Nav.ActivationMargin)
	}
	if cfg.Disclosure.TruncateLength != 180 {
		t.Errorf("expected default truncate length 180, got %d", cfg.Disclosure.TruncateLength)
	}
	if cfg.Relay.URL != DefaultRelayURL {
		t.Errorf("expected default relay url %q, got %q", DefaultRelayURL, cfg.Relay.URL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yml")
	data := []byte(`port: "9090"
relay:
  url: https://relay.example.com/f/abc
  timeout: 5s
nav:
  activation_margin: 120
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("FOLIO_DISCLOSURE_TRUNCATE_LENGTH", "90")
	t.Setenv("FOLIO_RELAY_SUBJECT", "Hello there")
	t.Setenv("PORT", "7000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("port: got %q, want 9090 from file over PORT", cfg.Port)
	}
	if cfg.Relay.URL != "https://relay.example.com/f/abc" {
		t.Errorf("relay.url: got %q", cfg.Relay.URL)
	}
	if cfg.Relay.Timeout != 5*time.Second {
		t.Errorf("relay.timeout: got %v", cfg.Relay.Timeout)
	}
	if cfg.Relay.Subject != "Hello there" {
		t.Errorf("relay.subject: got %q", cfg.Relay.Subject)
	}
	if cfg.Nav.ActivationMargin != 120 {
		t.Errorf("nav.activation_margin: got %d", cfg.Nav.ActivationMargin)
	}
	if cfg.Nav.TUIActivationMargin != 6 {
		t.Errorf("nav.tui_activation_margin: got %d, want default kept", cfg.Nav.TUIActivationMargin)
	}
	if cfg.Disclosure.TruncateLength != 90 {
		t.Errorf("disclosure.truncate_length: got %d", cfg.Disclosure.TruncateLength)
	}
}

func TestLoadMissingFileUsesPORT(t *testing.T) {
	t.Setenv("PORT", "5555")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "5555" {
		t.Errorf("port: got %q, want 5555", cfg.Port)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"FOLIO_PORT":                       "port",
		"FOLIO_RELAY_URL":                  "relay.url",
		"FOLIO_NAV_TUI_ACTIVATION_MARGIN":  "nav.tui_activation_margin",
		"FOLIO_SESSION_TTL":                "session.ttl",
		"FOLIO_SOMETHING_ELSE":             "something_else",
		"FOLIO_DISCLOSURE_TRUNCATE_LENGTH": "disclosure.truncate_length",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"bad mode", func(c *Config) { c.Mode = "loud" }},
		{"empty relay", func(c *Config) { c.Relay.URL = "" }},
		{"non-http relay", func(c *Config) { c.Relay.URL = "ftp://example.com" }},
		{"negative timeout", func(c *Config) { c.Relay.Timeout = -time.Second }},
		{"negative margin", func(c *Config) { c.Nav.ActivationMargin = -1 }},
		{"zero truncate", func(c *Config) { c.Disclosure.TruncateLength = 0 }},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
