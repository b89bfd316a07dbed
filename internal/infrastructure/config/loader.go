// Package config loads YAML configuration from ~/.macromate/config.yaml
// (overridable via MACROMATE_CONFIG), writing defaults on first run.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/macromate/macromate/internal/domain"
)

// FileLoader implements ports.ConfigProvider over a YAML file.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a loader; an empty path uses the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load reads the config file, creating it with defaults when absent.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Path reports the config file location this loader resolves to.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("MACROMATE_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".macromate", "config.yaml")
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// Default returns the configuration written on first run.
func Default() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		API: domain.APISettings{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
		},
		Chat: domain.ChatSettings{
			HistoryTurns:          10,
			Temperature:           0.7,
			MaxAttempts:           3,
			RetryBackoffMS:        1000,
			ConnectTimeoutSeconds: 30,
			ReadTimeoutSeconds:    60,
		},
		Storage: domain.StorageSettings{
			Path: filepath.Join(userHomeDir(), ".macromate", "macromate.db"),
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	def := Default()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = def.ConfigFormatVersion
	}
	if cfg.API.Endpoint == "" {
		cfg.API.Endpoint = def.API.Endpoint
	}
	if cfg.API.Model == "" {
		cfg.API.Model = def.API.Model
	}
	if cfg.Chat.HistoryTurns <= 0 {
		cfg.Chat.HistoryTurns = def.Chat.HistoryTurns
	}
	if cfg.Chat.Temperature <= 0 {
		cfg.Chat.Temperature = def.Chat.Temperature
	}
	if cfg.Chat.MaxAttempts <= 0 {
		cfg.Chat.MaxAttempts = def.Chat.MaxAttempts
	}
	if cfg.Chat.RetryBackoffMS <= 0 {
		cfg.Chat.RetryBackoffMS = def.Chat.RetryBackoffMS
	}
	if cfg.Chat.ConnectTimeoutSeconds <= 0 {
		cfg.Chat.ConnectTimeoutSeconds = def.Chat.ConnectTimeoutSeconds
	}
	if cfg.Chat.ReadTimeoutSeconds <= 0 {
		cfg.Chat.ReadTimeoutSeconds = def.Chat.ReadTimeoutSeconds
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = def.Storage.Path
	}
	return cfg
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return path
}

func userHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
