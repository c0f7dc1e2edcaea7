package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads .env files into the process environment. Missing files
// are not an error; variables already set win.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv overlays INTERNMATCH_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if v := env("INTERNMATCH_DATA_DIR"); v != "" {
		cfg.App.DataDir = v
	}
	if v := env("INTERNMATCH_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
	if v := env("INTERNMATCH_LOG_MODE"); v != "" {
		cfg.App.LogMode = v
	}
	if v := env("INTERNMATCH_LOG_LEVEL"); v != "" {
		cfg.App.LogLevel = v
	}
	if v := env("INTERNMATCH_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := env("INTERNMATCH_REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
	if v := env("INTERNMATCH_MATCHING_VERSION"); v != "" {
		cfg.Scoring.CurrentVersion = v
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
