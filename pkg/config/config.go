package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Parser        ParserConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
}

// ParserConfig tunes the statement extraction engine.
type ParserConfig struct {
	StrictFiltering      bool
	MinDescriptionLength int
	MaxDescriptionLength int
	DecimalStyle         string // "us", "eu" or "auto"
	SanitizeProviders    bool
}

type LoggingConfig struct {
	Level  string
	Format string // "text" or "json"
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Parser: ParserConfig{
			StrictFiltering:      getEnvAsBool("PARSER_STRICT_FILTERING", true),
			MinDescriptionLength: getEnvAsInt("PARSER_MIN_DESCRIPTION_LENGTH", 3),
			MaxDescriptionLength: getEnvAsInt("PARSER_MAX_DESCRIPTION_LENGTH", 120),
			DecimalStyle:         getEnv("PARSER_DECIMAL_STYLE", "auto"),
			SanitizeProviders:    getEnvAsBool("PARSER_SANITIZE_PROVIDERS", true),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", false),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	switch cfg.Parser.DecimalStyle {
	case "us", "eu", "auto":
	default:
		return nil, fmt.Errorf("PARSER_DECIMAL_STYLE must be us, eu or auto, got %q", cfg.Parser.DecimalStyle)
	}

	if cfg.Parser.MinDescriptionLength > cfg.Parser.MaxDescriptionLength {
		return nil, fmt.Errorf("PARSER_MIN_DESCRIPTION_LENGTH (%d) exceeds PARSER_MAX_DESCRIPTION_LENGTH (%d)",
			cfg.Parser.MinDescriptionLength, cfg.Parser.MaxDescriptionLength)
	}

	return cfg, nil
}

// SlogLevel maps the configured level name onto a slog.Level, defaulting to
// Info for unknown names.
func (c *LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
