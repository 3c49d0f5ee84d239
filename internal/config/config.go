package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	configDirName  = "gomenu"
	configFileName = "config.json"
)

// Config represents the persisted settings.
type Config struct {
	// Trigger is the query prefix the launcher host routes to this
	// handler.
	Trigger string `json:"trigger"`
	// Fuzzy switches matching from substring to fuzzy.
	Fuzzy bool `json:"fuzzy"`
	// MaxResults caps how many ranked entries one query returns.
	MaxResults int `json:"maxResults"`
	// WalkTimeoutMS bounds the wait for a menu traversal in milliseconds.
	// Zero waits for as long as the traversal takes.
	WalkTimeoutMS int `json:"walkTimeoutMs"`
	// Hotkey is the global shortcut that opens the standalone picker, in
	// "ctrl+option+m" form.
	Hotkey string `json:"hotkey"`
	// Notifications enables permission and action-failure toasts.
	Notifications bool `json:"notifications"`
	// IncludeAppleMenu also indexes the leading menu every application
	// shares.
	IncludeAppleMenu bool `json:"includeAppleMenu"`
}

// Defaults returns the stock configuration.
func Defaults() Config {
	return Config{
		Trigger:       "m",
		MaxResults:    24,
		Hotkey:        "ctrl+option+m",
		Notifications: true,
	}
}

// WalkTimeout returns the traversal bound as a duration, zero for no bound.
func (c Config) WalkTimeout() time.Duration {
	return time.Duration(c.WalkTimeoutMS) * time.Millisecond
}

// Path returns the resolved configuration file path.
func Path() (string, error) {
	if custom := os.Getenv("GOMENU_CONFIG_PATH"); custom != "" {
		if err := os.MkdirAll(filepath.Dir(custom), 0o700); err != nil {
			return "", fmt.Errorf("ensure custom config directory: %w", err)
		}
		return custom, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine user config dir: %w", err)
	}

	dir := filepath.Join(base, configDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("ensure config directory: %w", err)
	}

	return filepath.Join(dir, configFileName), nil
}

// Load reads the configuration, returning defaults when no file exists.
// Fields absent from an older file are backfilled with their defaults.
func Load() (Config, error) {
	cfg := Defaults()

	path, err := Path()
	if err != nil {
		return cfg, err
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Defaults(), fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.backfill()
	return cfg, nil
}

// Save persists the configuration. The write goes through a temp file in
// the same directory so a crash never leaves a half-written config behind.
func Save(cfg Config) error {
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	path, err := Path()
	if err != nil {
		return err
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, raw, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return os.Rename(tempFile, path)
}

func (c *Config) backfill() {
	d := Defaults()
	if c.Trigger == "" {
		c.Trigger = d.Trigger
	}
	if c.MaxResults <= 0 {
		c.MaxResults = d.MaxResults
	}
	if c.WalkTimeoutMS < 0 {
		c.WalkTimeoutMS = 0
	}
	if c.Hotkey == "" {
		c.Hotkey = d.Hotkey
	}
}
