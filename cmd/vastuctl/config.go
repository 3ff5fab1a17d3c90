package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is persisted between runs. It holds the signed-in token the
// way a browser keeps it in local storage.
type fileConfig struct {
	APIURL    string    `yaml:"api_url,omitempty"`
	Email     string    `yaml:"email,omitempty"`
	Token     string    `yaml:"token,omitempty"`
	ExpiresAt time.Time `yaml:"expires_at,omitempty"`
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vastuctl", "config.yaml"), nil
}

// loadConfig returns an empty config when the file does not exist.
func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// saveConfig writes the file owner-only since it carries a bearer token.
func saveConfig(path string, cfg *fileConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// tokenExpired reports whether a stored token is known to be stale.
func (c *fileConfig) tokenExpired(now time.Time) bool {
	return c.Token != "" && !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
