package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/payback159/contactform/pkg/logging"
)

// Config holds the preview server settings
type Config struct {
	Port            int
	Env             string
	LogLevel        slog.Level
	StaticDir       string
	MessagesFile    string
	ShutdownTimeout time.Duration
}

// Production reports whether the server runs in production mode
func (c Config) Production() bool {
	return c.Env == "production"
}

// Addr returns the listen address
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads the configuration from the environment
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:            8080,
		Env:             "development",
		LogLevel:        slog.LevelInfo,
		StaticDir:       "static",
		ShutdownTimeout: 10 * time.Second,
	}

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := getenv("ENV"); v != "" {
		cfg.Env = v
	}

	// Production stays quiet unless asked otherwise
	if cfg.Production() {
		cfg.LogLevel = slog.LevelWarn
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		level, err := logging.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if v := getenv("STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}

	cfg.MessagesFile = getenv("MESSAGES_FILE")

	if v := getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q", v)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}
