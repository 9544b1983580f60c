package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/cli-sheets/internal/logging"
)

const (
	configDirName  = ".cli-sheets"
	configFileName = "config.json"
	keymapFileName = "keymap.json"
	stateFileName  = "state.json"
)

var (
	ErrNotConfigured = errors.New("cli-sheets is not configured")

	log = logging.New("config")
)

// Config stores user-defined CLI Sheets settings.
type Config struct {
	// ExportName is the path written by the export action. Empty means the
	// editor default in the working directory.
	ExportName      string            `json:"export_name,omitempty"`
	Keybindings     map[string]string `json:"keybindings,omitempty"`
	KeymapFile      string            `json:"keymap_file,omitempty"`
	ShowHelpOnStart bool              `json:"show_help_on_start,omitempty"`
	// FileWatchIntervalSeconds is how often the open workbook is checked for
	// changes made by other programs. Zero uses the default, negative
	// disables the check.
	FileWatchIntervalSeconds int `json:"file_watch_interval_seconds,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	cfg := Config{}
	if path, err := DefaultKeymapFile(); err == nil {
		cfg.KeymapFile = path
	}
	return cfg
}

// DefaultKeymapFile returns the keymap path used when keymap_file is unset.
func DefaultKeymapFile() (string, error) {
	home, err := userHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, keymapFileName), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	home, err := userHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// StatePath returns the path of the app state file (recent workbooks).
func StatePath() (string, error) {
	home, err := userHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, stateFileName), nil
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

// Load reads and normalizes the saved configuration.
func Load() (Config, error) {
	path, err := ConfigPath()
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

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	log.Debug("loaded config", "path", path)
	return cfg, nil
}

// Save writes configuration to disk.
func Save(cfg Config) error {
	if err := cfg.normalize(); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Info("saved config", "path", path)
	return nil
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.ExportName) != "" {
		name, err := NormalizePath(c.ExportName)
		if err != nil {
			return fmt.Errorf("invalid export_name: %w", err)
		}
		c.ExportName = name
	} else {
		c.ExportName = ""
	}

	if strings.TrimSpace(c.KeymapFile) == "" {
		path, err := DefaultKeymapFile()
		if err != nil {
			return err
		}
		c.KeymapFile = path
		return nil
	}
	path, err := NormalizePath(c.KeymapFile)
	if err != nil {
		return fmt.Errorf("invalid keymap_file: %w", err)
	}
	c.KeymapFile = path
	return nil
}

// NormalizePath expands a leading ~ and returns a clean absolute path.
func NormalizePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return userHome()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := userHome()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}

func userHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return home, nil
}
