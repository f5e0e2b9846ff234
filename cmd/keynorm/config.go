package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/andresousadotpt/keynorm"
	"gopkg.in/yaml.v3"
)

// Config is the daemon configuration read from config.yml.
type Config struct {
	ConfigVersion int      `yaml:"config_version"`
	LogLevel      string   `yaml:"log_level"`
	Layout        string   `yaml:"layout"`
	Forward       bool     `yaml:"forward"`
	Grab          bool     `yaml:"grab"`
	MuteKeys      []string `yaml:"mute_keys"`
}

// LoadConfig reads config.yml from dir. A missing file yields defaults
// so the daemon runs without `keynorm init`.
func LoadConfig(dir string) (*Config, error) {
	cfg := &Config{LogLevel: "info", Layout: "us"}

	data, err := os.ReadFile(filepath.Join(dir, "config.yml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config.yml: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Layout == "" {
		cfg.Layout = "us"
	}
	return cfg, nil
}

// ResolveLayout returns the configured layout: the built-in name, or a
// layout file. Relative paths resolve against the config directory.
func (c *Config) ResolveLayout(dir string) (*keynorm.Layout, error) {
	if c.Layout == "us" {
		return keynorm.USLayout(), nil
	}
	path := c.Layout
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return keynorm.LoadLayout(path)
}

// MuteSet resolves mute_keys names through the forward table.
func (c *Config) MuteSet() (map[keynorm.Code]bool, error) {
	set := make(map[keynorm.Code]bool, len(c.MuteKeys))
	for _, name := range c.MuteKeys {
		code, ok := keynorm.Codes[name]
		if !ok {
			return nil, fmt.Errorf("mute_keys: unknown key name %q", name)
		}
		set[code] = true
	}
	return set, nil
}
