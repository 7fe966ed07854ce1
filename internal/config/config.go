// Package config loads and saves the daybook.yaml configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level daybook.yaml configuration shared by the
// server and the client commands.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Ledger LedgerConfig `yaml:"ledger"`

	// HintsFile points at a colonconf hints file mapping raw bank labels
	// to canonical accounts.
	HintsFile string `yaml:"hints_file,omitempty"`
}

// ServerConfig identifies the daybook server and its credentials.
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LedgerConfig controls the ledger core.
type LedgerConfig struct {
	// PrimaryCurrency is the fallback currency when a row offers no
	// better suggestion.
	PrimaryCurrency string `yaml:"primary_currency"`

	// DuplicateWindow is the day-distance within which differently
	// sourced reports of one event merge. Negative disables duplicate
	// detection; zero merges same-day reports only.
	DuplicateWindow int `yaml:"duplicate_window"`
}

// Addr returns the server's host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// URL returns the server's base URL.
func (s ServerConfig) URL() string {
	return "http://" + s.Addr()
}

// Load reads a daybook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 5680,
		},
		Ledger: LedgerConfig{
			PrimaryCurrency: "usd",
			DuplicateWindow: 5,
		},
	}
}
