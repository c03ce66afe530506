package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDirName  = "verdiff"
	configFileName = "config.json"

	defaultSyntaxStyle      = "monokai"
	defaultVersionPaneWidth = 32
)

type AppConfig struct {
	SyntaxStyle      string `json:"syntax_style"`
	VersionPaneWidth int    `json:"version_pane_width"`
}

func Load() (AppConfig, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return AppConfig{}, "", err
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

func LoadFromPath(path string) (AppConfig, error) {
	cfg := AppConfig{
		SyntaxStyle:      defaultSyntaxStyle,
		VersionPaneWidth: defaultVersionPaneWidth,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return AppConfig{}, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}

	if strings.TrimSpace(cfg.SyntaxStyle) == "" {
		cfg.SyntaxStyle = defaultSyntaxStyle
	}
	if cfg.VersionPaneWidth == 0 {
		cfg.VersionPaneWidth = defaultVersionPaneWidth
	}
	if cfg.VersionPaneWidth < 10 {
		return AppConfig{}, fmt.Errorf("version_pane_width %d is too narrow (minimum 10)", cfg.VersionPaneWidth)
	}

	return cfg, nil
}

func DefaultPath() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
