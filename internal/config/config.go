// Package config loads process configuration from environment variables and
// an optional .env file using Viper.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SupportedProvider is the only language-model provider this build talks to.
const SupportedProvider = "gemini"

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Config holds the application's configuration values. It is read-only for
// the lifetime of the process.
type Config struct {
	ServerPort string
	LogLevel   slog.Level
	LogFormat  string

	Provider       string
	GeminiAPIKey   string
	GeminiModel    string
	GeminiBaseURL  string
	RequestTimeout time.Duration

	RetryMaxAttempts int
	RetryDelay       time.Duration

	Database *DBConfig
}

// LoadConfig reads configuration, applies defaults, and validates the
// required fields. A missing API credential is a startup-time fatal
// condition.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LLM_PROVIDER", SupportedProvider)
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 300)
	viper.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("RETRY_DELAY_MS", 3000)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "ai_code_reviewer")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	viper.SetDefault("DB_CONN_MAX_IDLE_MINUTES", 5)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Debug("no .env file loaded", "error", err)
		}
	}

	provider := viper.GetString("LLM_PROVIDER")
	if provider != SupportedProvider {
		return nil, fmt.Errorf("unsupported LLM provider %q (only %q is supported)", provider, SupportedProvider)
	}
	if viper.GetString("GEMINI_API_KEY") == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	var logLevel slog.Level
	switch strings.ToLower(viper.GetString("LOG_LEVEL")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	case "info":
		logLevel = slog.LevelInfo
	default:
		slog.Warn("unrecognized log level, defaulting to info", "provided", viper.GetString("LOG_LEVEL"))
		logLevel = slog.LevelInfo
	}

	return &Config{
		ServerPort: viper.GetString("SERVER_PORT"),
		LogLevel:   logLevel,
		LogFormat:  viper.GetString("LOG_FORMAT"),

		Provider:       provider,
		GeminiAPIKey:   viper.GetString("GEMINI_API_KEY"),
		GeminiModel:    viper.GetString("GEMINI_MODEL"),
		GeminiBaseURL:  viper.GetString("GEMINI_BASE_URL"),
		RequestTimeout: time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,

		RetryMaxAttempts: viper.GetInt("RETRY_MAX_ATTEMPTS"),
		RetryDelay:       time.Duration(viper.GetInt("RETRY_DELAY_MS")) * time.Millisecond,

		Database: &DBConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			Username:        viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Database:        viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_MINUTES")) * time.Minute,
		},
	}, nil
}
