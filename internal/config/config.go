// Package config loads the LocalNotes YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Database     string     `yaml:"database"`
	ExportDir    string     `yaml:"export_dir"`
	Pen          PenConfig  `yaml:"pen"`
	Text         TextConfig `yaml:"text"`
	SwitchPolicy string     `yaml:"switch_policy"` // autosave | discard
	Tool         string     `yaml:"tool"`          // pen | select | erase | text
}

// PenConfig is the initial ink style.
type PenConfig struct {
	Color string  `yaml:"color"`
	Width float64 `yaml:"width"`
}

// TextConfig is the style of new text boxes.
type TextConfig struct {
	Font  string `yaml:"font"`
	Color string `yaml:"color"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads a YAML configuration file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// DefaultPath is $XDG_CONFIG_HOME/localnotes/config.yaml.
func DefaultPath() string {
	return filepath.Join(configDir(), "localnotes", "config.yaml")
}

func (c *Config) applyDefaults() {
	if c.Database == "" {
		c.Database = filepath.Join(dataDir(), "localnotes", "notes.db")
	}
	if c.ExportDir == "" {
		c.ExportDir = filepath.Join(homeDir(), "Documents", "LocalNotes")
	}
	if c.Pen.Color == "" {
		c.Pen.Color = "black"
	}
	if c.Pen.Width <= 0 {
		c.Pen.Width = 3
	}
	if c.Text.Font == "" {
		c.Text.Font = "16px sans-serif"
	}
	if c.Text.Color == "" {
		c.Text.Color = "black"
	}
	if c.SwitchPolicy == "" {
		c.SwitchPolicy = "autosave"
	}
	if c.Tool == "" {
		c.Tool = "pen"
	}
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return filepath.Join(homeDir(), ".config")
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), ".local", "share")
}

func homeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
