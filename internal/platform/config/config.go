package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIBaseURL    string
	Environment   string
	Timeout       time.Duration
	HealthTimeout time.Duration
	RetryWait     time.Duration
	WarmUpWait    time.Duration
	DataDir       string
}

func Load() Config {
	return Config{
		APIBaseURL:    getEnv("HREADY_API_URL", ""),
		Environment:   getEnv("APP_ENV", "development"),
		Timeout:       getEnvDuration("HREADY_TIMEOUT", 30*time.Second),
		HealthTimeout: getEnvDuration("HREADY_HEALTH_TIMEOUT", 10*time.Second),
		RetryWait:     getEnvDuration("HREADY_RETRY_WAIT", 2*time.Second),
		WarmUpWait:    getEnvDuration("HREADY_WARMUP_WAIT", 3*time.Second),
		DataDir:       getEnv("HREADY_DATA_DIR", defaultDataDir()),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hready"
	}
	return filepath.Join(home, ".hready")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvDuration accepts either a bare millisecond count or a Go duration
// string, so HREADY_RETRY_WAIT=2000 and HREADY_RETRY_WAIT=2s are equivalent.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("HREADY_API_URL is required")
	}
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("HREADY_API_URL must be an absolute URL")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("HREADY_TIMEOUT must be positive")
	}
	if c.HealthTimeout <= 0 {
		return fmt.Errorf("HREADY_HEALTH_TIMEOUT must be positive")
	}
	if c.RetryWait < 0 {
		return fmt.Errorf("HREADY_RETRY_WAIT must not be negative")
	}
	if c.WarmUpWait < 0 {
		return fmt.Errorf("HREADY_WARMUP_WAIT must not be negative")
	}
	return nil
}
