// config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is everything the server needs to run. Values come from an optional
// YAML file, then the environment on top; there are no module-level globals.
type Config struct {
	Addr            string        `yaml:"addr"`
	DatabaseURL     string        `yaml:"database_url"`
	LogLevel        string        `yaml:"log_level"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
	MaxContentBytes int           `yaml:"max_content_bytes"`
}

func defaults() Config {
	return Config{
		Addr:            ":8080",
		LogLevel:        "info",
		SessionTTL:      30 * 24 * time.Hour,
		MaxContentBytes: 1 << 20,
	}
}

// Load reads .env (if present), an optional YAML config file named by
// JOTLIN_CONFIG, and finally environment overrides.
func Load() (Config, error) {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("JOTLIN_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := os.Getenv("JOTLIN_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("JOTLIN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("JOTLIN_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse JOTLIN_SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = ttl
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is not set")
	}
	return cfg, nil
}
