package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the API server settings, read from the environment.
type Config struct {
	Port           string
	Env            string
	LogLevel       string
	LogFormat      string
	DatabaseDriver string
	DatabaseDSN    string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxLength      int
	MaxBulk        int
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "mysql"),
		DatabaseDSN:    getEnv("DATABASE_DSN", ""),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		MaxLength:      getEnvInt("MAX_LENGTH", 1024),
		MaxBulk:        getEnvInt("MAX_BULK", 100),
	}

	if cfg.Env == "production" && cfg.LogFormat != "json" {
		slog.Warn("non-JSON log format in production", "format", cfg.LogFormat)
	}

	return cfg
}

// HistoryEnabled reports whether a history database is configured.
func (c Config) HistoryEnabled() bool {
	return c.DatabaseDSN != ""
}

// FileConfig holds CLI defaults read from a YAML file. Flags override it.
type FileConfig struct {
	Preset       string `yaml:"preset"`
	Length       int    `yaml:"length"`
	Count        int    `yaml:"count"`
	ExportFormat string `yaml:"export_format"`
	HistoryDSN   string `yaml:"history_dsn"`
}

// LoadFile reads CLI defaults from path. A missing file yields zero defaults.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	if path == "" {
		return fc, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if fc.Length < 0 || fc.Count < 0 {
		return fc, fmt.Errorf("config file %s: length and count must not be negative", path)
	}
	return fc, nil
}

// DefaultFilePath is $PASSFORGE_CONFIG, else ~/.config/passforge/config.yaml.
func DefaultFilePath() string {
	if p := os.Getenv("PASSFORGE_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "passforge", "config.yaml")
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("ignoring invalid integer setting", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("ignoring invalid number setting", "key", key, "value", v)
		return fallback
	}
	return f
}
