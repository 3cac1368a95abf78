package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	ServerPort      int           `json:"server_port"`
	LogLevel        string        `json:"log_level"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	Version         string        `json:"version"`

	// Storage backend selection. A non-empty MongoURI selects the Mongo-backed
	// store; an empty one falls back to the in-memory store.
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// CORS allowed origins. ["*"] means permissive.
	CORSAllowOrigins []string `json:"cors_allow_origins"`
}

// LoadConfig loads configuration from environment variables with sensible defaults
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:       getEnvInt("PORT", 8080),
		LogLevel:         getEnvString("LOG_LEVEL", "INFO"),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		Version:          getEnvString("VERSION", "1.0.0"),
		MongoURI:         getEnvString("MONGO_URI", ""),
		MongoDatabase:    getEnvString("MONGO_DB", "app"),
		CORSAllowOrigins: getEnvCSV("CORS_ALLOW_ORIGINS", []string{"*"}),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Address returns the server address in host:port format
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// MongoConfigured reports whether a Mongo connection string was supplied.
func (c *Config) MongoConfigured() bool {
	return c.MongoURI != ""
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvCSV(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" || value == "*" {
		return defaultValue
	}

	var parts []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}

// validate performs basic validation of the configuration
func (c *Config) validate() error {
	// Validate ServerPort
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid server port %d: must be between 1 and 65535", c.ServerPort)
	}

	// Validate and normalize LogLevel
	validLevels := map[string]bool{
		"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true,
	}
	upperLevel := strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if !validLevels[upperLevel] {
		return fmt.Errorf("invalid log level '%s': must be DEBUG, INFO, WARN, or ERROR", c.LogLevel)
	}
	c.LogLevel = upperLevel

	// Validate ShutdownTimeout
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout)
	}
	if c.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("invalid shutdown timeout %v: must not exceed 5 minutes", c.ShutdownTimeout)
	}

	// Validate Version
	if strings.TrimSpace(c.Version) == "" {
		return fmt.Errorf("version cannot be empty")
	}
	c.Version = strings.TrimSpace(c.Version)

	if c.MongoConfigured() {
		c.MongoURI = strings.TrimSpace(c.MongoURI)
		if !strings.HasPrefix(c.MongoURI, "mongodb://") && !strings.HasPrefix(c.MongoURI, "mongodb+srv://") {
			return fmt.Errorf("invalid mongo URI '%s': must start with mongodb:// or mongodb+srv://", c.MongoURI)
		}
		if strings.TrimSpace(c.MongoDatabase) == "" {
			return fmt.Errorf("mongo database name cannot be empty when MONGO_URI is set")
		}
		c.MongoDatabase = strings.TrimSpace(c.MongoDatabase)
	}

	return nil
}
