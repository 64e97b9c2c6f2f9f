// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the POS terminal
type Config struct {
	App     AppConfig
	Server  ServerConfig
	Backend BackendConfig
	Store   StoreConfig
	Shop    ShopConfig
	Logging LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains the local shell-facing HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// BackendConfig contains the back-office API configuration
type BackendConfig struct {
	// BaseURL is the root of the back-office REST API, e.g.
	// http://localhost:8000/api/
	BaseURL string
}

// StoreConfig contains the durable local state configuration
type StoreConfig struct {
	// Path is the SQLite file holding the persisted session
	Path string
}

// ShopConfig contains the details printed on receipts
type ShopConfig struct {
	Name    string
	Address string
	Phone   string
	GSTIN   string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "CafePOS Terminal"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Host:         getEnv("POS_HOST", "127.0.0.1"),
			Port:         getEnv("POS_PORT", "7070"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000/api/"),
		},
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", "pos-terminal.db"),
		},
		Shop: ShopConfig{
			Name:    getEnv("SHOP_NAME", "Cafe POS"),
			Address: getEnv("SHOP_ADDRESS", ""),
			Phone:   getEnv("SHOP_PHONE", ""),
			GSTIN:   getEnv("SHOP_GSTIN", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("BACKEND_BASE_URL must be an http(s) URL")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("POS_PORT is required")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required")
	}
	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ListenAddr returns the address the shell-facing server binds to
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// BackendURL joins the backend base URL with a relative endpoint path
func (c *Config) BackendURL(endpoint string) string {
	return strings.TrimSuffix(c.Backend.BaseURL, "/") + "/" + strings.TrimPrefix(endpoint, "/")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
