package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/dyntext/estimate"
	"github.com/treykane/dyntext/internal/logging"
)

const (
	configDirName  = ".dyntext"
	configFileName = "config.json"
	draftFileName  = "draft.json"

	// DefaultPlaceholder is shown in an empty composer.
	DefaultPlaceholder = "Write a message"

	// DefaultFont measures in terminal cells.
	DefaultFont = "cells"
)

var ErrNotConfigured = errors.New("dyntext is not configured")

var log = logging.New("config")

// Config stores the demo composer settings.
type Config struct {
	Placeholder      string  `json:"placeholder"`
	MaxLines         int     `json:"max_lines"`
	LineSpacing      int     `json:"line_spacing"`
	Foreground       string  `json:"foreground,omitempty"`
	PlaceholderColor string  `json:"placeholder_color,omitempty"`
	Font             string  `json:"font"`
	PixelWidth       float64 `json:"pixel_width,omitempty"`
	SubmitOnEnter    bool    `json:"submit_on_enter"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Placeholder:   DefaultPlaceholder,
		MaxLines:      estimate.DefaultMaxLines,
		Font:          DefaultFont,
		SubmitOnEnter: true,
	}
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// DraftPath returns the path of the composer draft file.
func DraftPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName, draftFileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path: %w", err)
}

// Load reads and validates the configuration at ConfigPath.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(path)
}

// LoadFile reads and validates the configuration at path. A missing file
// returns ErrNotConfigured. Keys absent from the file keep their defaults.
func LoadFile(path string) (Config, error) {
	path, err := expandHome(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotConfigured
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	log.Debug("loaded config", "path", path)
	return cfg, nil
}

// Save writes configuration to ConfigPath.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile validates cfg and writes it to path.
func SaveFile(path string, cfg Config) error {
	if err := cfg.Normalize(); err != nil {
		return err
	}
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Info("saved config", "path", path)
	return nil
}

// Normalize fills defaults for unset fields and rejects invalid values.
func (c *Config) Normalize() error {
	c.Placeholder = strings.TrimRight(c.Placeholder, "\r\n")
	if c.MaxLines < 0 {
		return fmt.Errorf("invalid max_lines: %d is negative", c.MaxLines)
	}
	if c.MaxLines == 0 {
		c.MaxLines = estimate.DefaultMaxLines
	}
	if c.LineSpacing < 0 {
		return fmt.Errorf("invalid line_spacing: %d is negative", c.LineSpacing)
	}
	if c.PixelWidth < 0 {
		return fmt.Errorf("invalid pixel_width: %v is negative", c.PixelWidth)
	}

	c.Font = strings.TrimSpace(c.Font)
	if c.Font == "" {
		c.Font = DefaultFont
	}
	if _, err := ParseFontSpec(c.Font); err != nil {
		return fmt.Errorf("invalid font: %w", err)
	}

	c.Foreground = strings.TrimSpace(c.Foreground)
	c.PlaceholderColor = strings.TrimSpace(c.PlaceholderColor)
	return nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
