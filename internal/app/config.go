package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the config file name inside the home directory.
const ConfigFile = "config.yaml"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home      string        `yaml:"-"`          // config directory, e.g. $HOME/.suichat
	LedgerURL string        `yaml:"ledger_url"` // ledger base URL, e.g. http://127.0.0.1:8080
	SaltURL   string        `yaml:"salt_url"`   // salt service endpoint for federated logins
	Timeout   time.Duration `yaml:"timeout"`    // per-request timeout for collaborators
	LogLevel  string        `yaml:"log_level"`  // zerolog level name
	HTTP      *http.Client  `yaml:"-"`          // optional; replaces the per-client defaults
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig(home string) Config {
	return Config{
		Home:      home,
		LedgerURL: "http://127.0.0.1:8080",
		Timeout:   10 * time.Second,
		LogLevel:  "warn",
	}
}

// DefaultHome returns ~/.suichat.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".suichat"), nil
}

// LoadConfig layers <home>/config.yaml and the environment over the defaults.
// A missing config file is not an error.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig(home)

	b, err := os.ReadFile(filepath.Join(home, ConfigFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", ConfigFile, err)
		}
		cfg.Home = home
	}

	if v, ok := os.LookupEnv("SUICHAT_LEDGER_URL"); ok {
		cfg.LedgerURL = v
	}
	if v, ok := os.LookupEnv("SUICHAT_SALT_URL"); ok {
		cfg.SaltURL = v
	}
	if v, ok := os.LookupEnv("SUICHAT_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("SUICHAT_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v, ok := os.LookupEnv("SUICHAT_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	return cfg, cfg.Validate()
}

// Validate checks URLs and the timeout.
func (c Config) Validate() error {
	if err := checkURL("ledger_url", c.LedgerURL, true); err != nil {
		return err
	}
	if err := checkURL("salt_url", c.SaltURL, false); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Save writes the file-backed fields to <home>/config.yaml.
func (c Config) Save() error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Home, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.Home, ConfigFile), b, 0o600)
}

func checkURL(name, raw string, required bool) error {
	if raw == "" {
		if required {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
	}
	return nil
}
