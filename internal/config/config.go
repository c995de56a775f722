package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Upload   UploadConfig
	Mail     MailConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds token signing configuration.
// AccessTokenSeconds is the stated lifetime of an issued token;
// RefreshSeconds is the window (measured from issue time) during which a
// token may still be presented for refresh or logout.
type JWTConfig struct {
	SignerKey          string
	AccessTokenSeconds int
	RefreshSeconds     int
}

// UploadConfig holds uploaded-document storage configuration
type UploadConfig struct {
	Dir       string
	URLPrefix string
}

// MailConfig holds the outbound mail relay configuration.
// Delivery is best-effort; an empty RelayURL disables it.
type MailConfig struct {
	RelayURL   string
	RelayToken string
	FromName   string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Upload:   loadUploadConfig(),
		Mail:     loadMailConfig(),
	}

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
		DBName:   getEnv(prefix+"DB_NAME", "loanconv"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessSecs, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_SECONDS", "3600"))
	refreshSecs, _ := strconv.Atoi(getEnv("REFRESH_DURATION_SECONDS", "36000"))

	return JWTConfig{
		SignerKey:          getEnv(prefix+"JWT_SIGNER_KEY", ""),
		AccessTokenSeconds: accessSecs,
		RefreshSeconds:     refreshSecs,
	}
}

// loadUploadConfig loads document upload config
func loadUploadConfig() UploadConfig {
	return UploadConfig{
		Dir:       getEnv("UPLOAD_DIR", "./uploads"),
		URLPrefix: getEnv("UPLOAD_URL_PREFIX", "/uploads"),
	}
}

// loadMailConfig loads the mail relay config
func loadMailConfig() MailConfig {
	return MailConfig{
		RelayURL:   getEnv("MAIL_RELAY_URL", ""),
		RelayToken: getEnv("MAIL_RELAY_TOKEN", ""),
		FromName:   getEnv("MAIL_FROM_NAME", "LoanConv"),
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
		return "https://loanconv.example.com"
	}
	return origins
}
