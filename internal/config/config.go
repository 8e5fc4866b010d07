package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Caller roles resolved from API keys
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	APIKeys  APIKeyConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// APIKeyConfig holds the static API keys that map to caller roles
type APIKeyConfig struct {
	Admin string
	User  string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	apiKeys, err := loadAPIKeyConfig(appMode)
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		APIKeys:  apiKeys,
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "fulkoping_rental"),
	}
}

// loadAPIKeyConfig loads the two static API keys. Production requires both;
// development generates missing keys and logs them so local clients can use
// the API straight away.
func loadAPIKeyConfig(mode string) (APIKeyConfig, error) {
	adminKey := strings.TrimSpace(os.Getenv("ADMIN_API_KEY"))
	userKey := strings.TrimSpace(os.Getenv("USER_API_KEY"))

	if mode == "prod" {
		if adminKey == "" || userKey == "" {
			return APIKeyConfig{}, fmt.Errorf("ADMIN_API_KEY and USER_API_KEY must be set in prod mode")
		}
		return APIKeyConfig{Admin: adminKey, User: userKey}, nil
	}

	if adminKey == "" {
		adminKey = uuid.NewString()
		log.Printf("🔑 Generated dev ADMIN_API_KEY: %s", adminKey)
	}
	if userKey == "" {
		userKey = uuid.NewString()
		log.Printf("🔑 Generated dev USER_API_KEY: %s", userKey)
	}
	return APIKeyConfig{Admin: adminKey, User: userKey}, nil
}

// RoleForAPIKey resolves an API key to a caller role
func (c *Config) RoleForAPIKey(key string) (string, bool) {
	switch key {
	case c.APIKeys.Admin:
		return RoleAdmin, true
	case c.APIKeys.User:
		return RoleUser, true
	default:
		return "", false
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://rental.fulkoping.se"
	}
	return origins
}
