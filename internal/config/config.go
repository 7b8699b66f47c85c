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
	Session  SessionConfig
	Cookie   CookieConfig
	TOTP     TOTPConfig
	SMTP     SMTPConfig
	Webhook  WebhookConfig
	Intake   IntakeConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SessionConfig holds admin session token configuration
type SessionConfig struct {
	Secret     string
	ExpiryDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// TOTPConfig holds the shared admin TOTP secret. The secret has no
// runtime lifecycle: it is configured once through the environment and
// cannot be rotated without a relaunch.
type TOTPConfig struct {
	Secret string
	Issuer string
}

// SMTPConfig holds outbound email configuration. An empty Host disables
// email delivery.
type SMTPConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	FromAddress  string
	FromName     string
	AdminAddress string
}

// WebhookConfig holds the chat webhook endpoint. An empty URL means the
// channel is skipped, not failed.
type WebhookConfig struct {
	URL string
}

// IntakeConfig holds the per-email submission quota
type IntakeConfig struct {
	MaxPerWindow int
	WindowHours  int
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
		Session:  loadSessionConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		TOTP: TOTPConfig{
			Secret: strings.TrimSpace(getEnv("ADMIN_TOTP_SECRET", "")),
			Issuer: getEnv("ADMIN_TOTP_ISSUER", "TradeLink"),
		},
		SMTP:    loadSMTPConfig(),
		Webhook: WebhookConfig{URL: strings.TrimSpace(getEnv("CHAT_WEBHOOK_URL", ""))},
		Intake:  loadIntakeConfig(),
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
		DBName:   getEnv(prefix+"DB_NAME", "tradelink"),
	}
}

// loadSessionConfig loads admin session config based on mode
func loadSessionConfig(mode string) SessionConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	expiryDays, _ := strconv.Atoi(getEnv("SESSION_EXPIRY_DAYS", "7"))

	return SessionConfig{
		Secret:     getEnv(prefix+"SESSION_SECRET", "default_secret"),
		ExpiryDays: expiryDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", strconv.FormatBool(mode == "prod")))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadSMTPConfig loads outbound email config
func loadSMTPConfig() SMTPConfig {
	port, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	return SMTPConfig{
		Host:         strings.TrimSpace(getEnv("SMTP_HOST", "")),
		Port:         port,
		Username:     getEnv("SMTP_USER", ""),
		Password:     getEnv("SMTP_PASS", ""),
		FromAddress:  getEnv("SMTP_FROM", "no-reply@tradelink.dev"),
		FromName:     getEnv("SMTP_FROM_NAME", "TradeLink"),
		AdminAddress: getEnv("ADMIN_EMAIL", ""),
	}
}

// loadIntakeConfig loads the per-email submission quota
func loadIntakeConfig() IntakeConfig {
	max, _ := strconv.Atoi(getEnv("INTAKE_MAX_PER_WINDOW", "3"))
	window, _ := strconv.Atoi(getEnv("INTAKE_WINDOW_HOURS", "24"))

	return IntakeConfig{
		MaxPerWindow: max,
		WindowHours:  window,
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
		return "https://tradelink.dev"
	}
	return origins
}
