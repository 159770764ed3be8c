package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the client reads from the environment. The one
// required piece of wiring is the API base URL; everything else has a
// working default.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	PageSize       int
	SessionFile    string
	FlashDuration  time.Duration
	ExportWorkers  int
}

// Load reads a .env file when present, then the environment. Missing values
// fall back to defaults, so a bare `vaultguard` run talks to a local server.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:    getEnv("VAULTGUARD_API_URL", "http://localhost:8080"),
		SessionFile:   getEnv("VAULTGUARD_SESSION_FILE", defaultSessionFile()),
		FlashDuration: 5 * time.Second,
	}

	timeout, err := time.ParseDuration(getEnv("VAULTGUARD_REQUEST_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, err
	}
	cfg.RequestTimeout = timeout

	pageSize, err := strconv.Atoi(getEnv("VAULTGUARD_PAGE_SIZE", "10"))
	if err != nil {
		return Config{}, err
	}
	cfg.PageSize = pageSize

	workers, err := strconv.Atoi(getEnv("VAULTGUARD_EXPORT_WORKERS", "4"))
	if err != nil {
		return Config{}, err
	}
	cfg.ExportWorkers = workers

	return cfg, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vaultguard-session.json"
	}
	return filepath.Join(home, ".vaultguard", "session.json")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
