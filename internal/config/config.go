package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds everything the console needs at startup. All values come from
// the environment (a .env file is honored when present); the base URL default
// matches a registry backend running locally.
type Config struct {
	APIBaseURL  string        `validate:"required,url"`
	PageSize    int           `validate:"required,min=1,max=100"`
	HTTPTimeout time.Duration `validate:"required"`
	StateDir    string        `validate:"required"`
	LogFile     string
	LogLevel    string
	Theme       string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	stateDir := os.Getenv("PARISH_STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home: %w", err)
		}
		stateDir = filepath.Join(home, ".parish")
	}

	cfg := &Config{
		APIBaseURL:  getEnv("PARISH_API_BASE_URL", "http://127.0.0.1:8000"),
		PageSize:    getInt("PARISH_PAGE_SIZE", 7),
		HTTPTimeout: getDuration("PARISH_HTTP_TIMEOUT", 30*time.Second),
		StateDir:    stateDir,
		LogFile:     getEnv("PARISH_LOG_FILE", filepath.Join(stateDir, "console.log")),
		LogLevel:    getEnv("PARISH_LOG_LEVEL", "info"),
		Theme:       getEnv("PARISH_THEME", "classic"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
