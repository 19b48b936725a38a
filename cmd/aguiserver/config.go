package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/edgee-cloud/go-sdk/client"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	// Server
	Port     string
	LogLevel string // debug, info, warn, error

	// Gateway
	Client client.Config
	Model  string

	// Loop
	MaxToolIterations int
	Timeout           time.Duration
	Stream            bool
	EnableDemoTools   bool
}

// LoadConfig loads configuration from environment variables.
// client.ConfigFromEnv loads a .env file first when one is present.
func LoadConfig() (*Config, error) {
	cc, err := client.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:              getEnvOrDefault("AGUI_PORT", "8000"),
		LogLevel:          getEnvOrDefault("AGUI_LOG_LEVEL", "info"),
		Client:            cc,
		Model:             os.Getenv("EDGEE_MODEL"),
		MaxToolIterations: getEnvIntOrDefault("EDGEE_MAX_TOOL_ITERATIONS", 10),
		Timeout:           getEnvDurationOrDefault("EDGEE_TIMEOUT", 2*time.Minute),
		Stream:            getEnvBoolOrDefault("EDGEE_STREAM", true),
		EnableDemoTools:   getEnvBoolOrDefault("EDGEE_DEMO_TOOLS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("EDGEE_MODEL is required (e.g. openai/gpt-4o)")
	}
	if c.MaxToolIterations < 1 {
		return fmt.Errorf("EDGEE_MAX_TOOL_ITERATIONS must be at least 1, got %d", c.MaxToolIterations)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid AGUI_PORT %q", c.Port)
	}
	return nil
}

// Level returns the slog level for LogLevel. Unknown values mean info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
