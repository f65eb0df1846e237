package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// WriteTimeoutMargin is the time SERVER_WRITE_TIMEOUT must leave after
// CHAIN_SUBMIT_TIMEOUT for the response to a timed-out write to be sent.
const WriteTimeoutMargin = 10 * time.Second

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Chain     ChainConfig
	Keystore  KeystoreConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
	Debug          bool // log at debug level
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// ChainConfig holds the Substrate node settings
type ChainConfig struct {
	Endpoints      []string // one pool slot per endpoint
	ClientIndex    int
	SS58Prefix     uint16
	SubmitTimeout  time.Duration
	HealthInterval time.Duration
}

// KeystoreConfig holds signing key settings
type KeystoreConfig struct {
	Passphrase  string
	DevAccounts []string
}

// RateLimitConfig holds per-client HTTP limits
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	env := getEnv("SERVER_ENV", "development")

	var devAccounts []string
	if env == "development" {
		devAccounts = []string{"//Alice", "//Bob"}
	}

	prefix, err := strconv.ParseUint(getEnv("CHAIN_SS58_PREFIX", "42"), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("CHAIN_SS58_PREFIX: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            env,
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 2*time.Minute+30*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			Debug:          getBoolEnv("LOG_DEBUG", false),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "wetee"),
			Database:  getEnv("DB_DATABASE", "guildgate"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		Chain: ChainConfig{
			Endpoints:      getSliceEnv("CHAIN_ENDPOINTS", []string{"ws://127.0.0.1:9944"}),
			ClientIndex:    getIntEnv("CHAIN_CLIENT_INDEX", 0),
			SS58Prefix:     uint16(prefix),
			SubmitTimeout:  getDurationEnv("CHAIN_SUBMIT_TIMEOUT", 2*time.Minute),
			HealthInterval: getDurationEnv("CHAIN_HEALTH_INTERVAL", 30*time.Second),
		},
		Keystore: KeystoreConfig{
			Passphrase:  getEnv("KEYSTORE_PASSPHRASE", ""),
			DevAccounts: getSliceEnv("KEYSTORE_DEV_ACCOUNTS", devAccounts),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 60),
			Burst:     getIntEnv("RATE_LIMIT_BURST", 10),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	if len(c.Chain.Endpoints) == 0 {
		errs = append(errs, errors.New("CHAIN_ENDPOINTS must have at least one endpoint"))
	}
	for _, e := range c.Chain.Endpoints {
		if !strings.HasPrefix(e, "ws://") && !strings.HasPrefix(e, "wss://") &&
			!strings.HasPrefix(e, "http://") && !strings.HasPrefix(e, "https://") {
			errs = append(errs, fmt.Errorf("CHAIN_ENDPOINTS entry %q must be a ws(s) or http(s) URL", e))
		}
	}
	if c.Chain.ClientIndex < 0 || c.Chain.ClientIndex >= len(c.Chain.Endpoints) {
		errs = append(errs, fmt.Errorf("CHAIN_CLIENT_INDEX %d is out of range for %d endpoints", c.Chain.ClientIndex, len(c.Chain.Endpoints)))
	}
	if c.Chain.SubmitTimeout <= 0 {
		errs = append(errs, errors.New("CHAIN_SUBMIT_TIMEOUT must be positive"))
	}
	if c.Chain.HealthInterval <= 0 {
		errs = append(errs, errors.New("CHAIN_HEALTH_INTERVAL must be positive"))
	}
	if c.Server.WriteTimeout > 0 && c.Server.WriteTimeout < c.Chain.SubmitTimeout+WriteTimeoutMargin {
		errs = append(errs, fmt.Errorf("SERVER_WRITE_TIMEOUT must be at least CHAIN_SUBMIT_TIMEOUT + %s", WriteTimeoutMargin))
	}

	if c.IsProduction() {
		if c.Keystore.Passphrase == "" {
			errs = append(errs, errors.New("KEYSTORE_PASSPHRASE is required in production"))
		}
		if len(c.Keystore.DevAccounts) > 0 {
			errs = append(errs, errors.New("KEYSTORE_DEV_ACCOUNTS must be empty in production"))
		}
	}

	if c.RateLimit.PerMinute <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be positive"))
	}
	if c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
