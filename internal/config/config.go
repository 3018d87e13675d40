package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dukerupert/sabzi/internal/seed"
)

// Config holds the settings shared by the server and the CLI.
type Config struct {
	Port             string
	DBPath           string
	LogLevel         string
	LogFormat        string
	SeedFile         string
	BackupPassphrase string
}

// Load reads an optional .env file, then the SABZI_* environment variables.
// Variables already set in the environment win over .env.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for empty values.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		Port:             getenv("SABZI_PORT"),
		DBPath:           getenv("SABZI_DB_PATH"),
		LogLevel:         getenv("SABZI_LOG_LEVEL"),
		LogFormat:        getenv("SABZI_LOG_FORMAT"),
		SeedFile:         getenv("SABZI_SEED_FILE"),
		BackupPassphrase: getenv("SABZI_BACKUP_PASSPHRASE"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "sabzi.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg
}

// SeedText returns the first-run seed list: the contents of SeedFile when set,
// otherwise the embedded default.
func (c Config) SeedText() (string, error) {
	if c.SeedFile == "" {
		return seed.DefaultData, nil
	}
	data, err := os.ReadFile(c.SeedFile)
	if err != nil {
		return "", fmt.Errorf("read seed file: %w", err)
	}
	return string(data), nil
}
