// Package config loads runtime settings from defaults, an optional YAML
// file, a .env file and FOLIO_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/disclosure"
	"github.com/Zachkp/folio/internal/nav"
)

// EnvPrefix namespaces environment overrides: FOLIO_RELAY_URL -> relay.url.
const EnvPrefix = "FOLIO_"

// DefaultRelayURL is the hosted form endpoint messages go to.
const DefaultRelayURL = "https://formspree.io/f/mpqjowog"

type Config struct {
	Port string `koanf:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode       string           `koanf:"mode"`
	Relay      RelayConfig      `koanf:"relay"`
	Nav        NavConfig        `koanf:"nav"`
	Disclosure DisclosureConfig `koanf:"disclosure"`
	Session    SessionConfig    `koanf:"session"`
	Content    ContentConfig    `koanf:"content"`
}

type RelayConfig struct {
	URL string `koanf:"url"`
	// Subject overrides the subject derived from the profile name.
	Subject string        `koanf:"subject"`
	Timeout time.Duration `koanf:"timeout"`
}

type NavConfig struct {
	// ActivationMargin is how far, in pixels, a section activates before
	// its top reaches the top of the window.
	ActivationMargin int `koanf:"activation_margin"`
	// TUIActivationMargin is the same margin in terminal lines.
	TUIActivationMargin int `koanf:"tui_activation_margin"`
}

type DisclosureConfig struct {
	TruncateLength int `koanf:"truncate_length"`
}

type SessionConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

type ContentConfig struct {
	// Path replaces the built-in content when set.
	Path string `koanf:"path"`
}

func Default() *Config {
	return &Config{
		Port: "8080",
		Mode: "release",
		Relay: RelayConfig{
			URL:     DefaultRelayURL,
			Timeout: contact.DefaultRelayTimeout,
		},
		Nav: NavConfig{
			ActivationMargin:    nav.DefaultActivationMargin,
			TUIActivationMargin: 6,
		},
		Disclosure: DisclosureConfig{TruncateLength: disclosure.DefaultTruncateLength},
		Session:    SessionConfig{TTL: 30 * time.Minute},
	}
}

// Load reads the YAML file at path if it exists, then applies .env and
// environment overrides. A bare PORT variable is honored for hosts that
// set it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// Missing .env is normal outside development.
	_ = godotenv.Load()

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" && !k.Exists("port") {
		cfg.Port = port
	}
	return cfg, nil
}

// envKey maps FOLIO_NAV_ACTIVATION_MARGIN to nav.activation_margin. The
// first underscore separates the section; the rest belong to the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found {
		return section
	}
	switch section {
	case "relay", "nav", "disclosure", "session", "content":
		return section + "." + key
	}
	return s
}

// Validate checks that the configuration can run a server.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	switch c.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid mode %q: must be one of debug, release, test", c.Mode)
	}
	if c.Relay.URL == "" {
		return fmt.Errorf("relay.url is required")
	}
	if !strings.HasPrefix(c.Relay.URL, "http://") && !strings.HasPrefix(c.Relay.URL, "https://") {
		return fmt.Errorf("relay.url %q must be an http(s) URL", c.Relay.URL)
	}
	if c.Relay.Timeout < 0 {
		return fmt.Errorf("relay.timeout must be non-negative")
	}
	if c.Nav.ActivationMargin < 0 || c.Nav.TUIActivationMargin < 0 {
		return fmt.Errorf("activation margins must be non-negative")
	}
	if c.Disclosure.TruncateLength <= 0 {
		return fmt.Errorf("disclosure.truncate_length must be positive")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	return nil
}

// Addr is the listen address for the web server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
