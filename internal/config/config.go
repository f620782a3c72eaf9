package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/saravenpi/chatview/internal/chat"
	"github.com/saravenpi/chatview/internal/feed"
)

type Config struct {
	Source      string `yaml:"source" env:"CHATVIEW_SOURCE"`
	LocalSender string `yaml:"local_sender" env:"CHATVIEW_LOCAL_SENDER"`
	LogFile     string `yaml:"log_file" env:"CHATVIEW_LOG_FILE"`
	LogLevel    string `yaml:"log_level" env:"CHATVIEW_LOG_LEVEL"`
}

func Default() Config {
	return Config{
		Source:      feed.DefaultURL,
		LocalSender: chat.DefaultLocalSender,
		LogLevel:    "info",
	}
}

// GetConfigDir returns the path to the config directory (~/.chatview).
func GetConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".chatview")
}

// DefaultPath returns ~/.chatview/config.yml.
func DefaultPath() string {
	return filepath.Join(GetConfigDir(), "config.yml")
}

// Load builds the configuration from defaults, the YAML file at path, a .env
// file in the working directory and CHATVIEW_* variables, in that order.
// A missing YAML or .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}
