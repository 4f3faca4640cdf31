// Package config loads the CLI defaults from the environment.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys read by Load.
const (
	EnvDialect = "PARAMQ_DIALECT"
	EnvFormat  = "PARAMQ_FORMAT"
	EnvTable   = "PARAMQ_TABLE"
	EnvFile    = "PARAMQ_ENV_FILE"
)

// Built in fallbacks used when a key is not set.
const (
	DefaultDialect = "mongoose"
	DefaultFormat  = "json"
	DefaultEnvFile = ".env"
)

type Config struct {
	Dialect string
	Format  string
	Table   string
}

// Default returns the configuration used when the environment is empty.
func Default() *Config {
	return &Config{
		Dialect: DefaultDialect,
		Format:  DefaultFormat,
	}
}

// Load reads an optional .env file (PARAMQ_ENV_FILE overrides its path)
// and then the PARAMQ_* variables. Variables already present in the
// environment take precedence over the file.
func Load() *Config {
	path := getEnvOptional(EnvFile)
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("env_file_unreadable", slog.String("path", path), slog.Any("error", err))
	}

	return &Config{
		Dialect: strings.ToLower(getEnv(EnvDialect, DefaultDialect)),
		Format:  strings.ToLower(getEnv(EnvFormat, DefaultFormat)),
		Table:   getEnvOptional(EnvTable),
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	slog.Debug("env_default", slog.String("key", key), slog.String("fallback", fallback))
	return fallback
}

func getEnvOptional(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
