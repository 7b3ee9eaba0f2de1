// Package config loads settings from the environment and an optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// Completion endpoint
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// HTTP server
	Port string

	// Chat widget: when set, the widget talks to this server instead of the model
	ServerURL string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig mirrors the YAML layout. Empty fields leave defaults untouched.
type fileConfig struct {
	OpenAI struct {
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"openai"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Chat struct {
		ServerURL string `yaml:"server_url"`
	} `yaml:"chat"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Load reads configuration from the YAML file at path (if any), then lets
// environment variables override it.
func Load(path string) (Config, error) {
	var fc fileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	return Config{
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", fc.OpenAI.APIKey),
		OpenAIModel:   getEnv("OPENAI_MODEL", orDefault(fc.OpenAI.Model, "gpt-3.5-turbo")),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", fc.OpenAI.BaseURL),

		Port: getEnv("PORT", orDefault(fc.Server.Port, "8080")),

		ServerURL: getEnv("AIGURU_SERVER_URL", fc.Chat.ServerURL),

		LogFile:  getEnv("LOG_FILE", fc.Log.File),
		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", orDefault(fc.Log.Level, "INFO"))),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func orDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
