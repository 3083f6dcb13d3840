// Package config provides configuration loading for the Etown Exchange API.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"` // dev, staging, prod
	BaseURL      string        `mapstructure:"base_url"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig holds object storage (S3-compatible) configuration.
// Listing images are uploaded here and served from PublicBaseURL.
type StorageConfig struct {
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint"` // optional, for MinIO/localstack
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	SessionSecret     string        `mapstructure:"session_secret"`
	SessionExpiry     time.Duration `mapstructure:"session_expiry"`
	EmailDomain       string        `mapstructure:"email_domain"` // institutional suffix, e.g. @etown.edu
	VerificationTTL   time.Duration `mapstructure:"verification_ttl"`
	MinPasswordLength int           `mapstructure:"min_password_length"`
	OAuthGoogleID     string        `mapstructure:"oauth_google_id"`
	OAuthGoogleSecret string        `mapstructure:"oauth_google_secret"`
	OAuthCallbackURL  string        `mapstructure:"oauth_callback_url"`
}

// SMTPConfig holds verification email settings.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Addr returns the SMTP server address.
func (c SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from files and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/etown-exchange")

	// Enable environment variable override
	v.SetEnvPrefix("EXCHANGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Explicitly bind secrets (nested struct issue with viper)
	v.BindEnv("auth.session_secret", "EXCHANGE_AUTH_SESSION_SECRET")
	v.BindEnv("auth.oauth_google_id", "EXCHANGE_AUTH_OAUTH_GOOGLE_ID")
	v.BindEnv("auth.oauth_google_secret", "EXCHANGE_AUTH_OAUTH_GOOGLE_SECRET")
	v.BindEnv("smtp.username", "EXCHANGE_SMTP_USERNAME")
	v.BindEnv("smtp.password", "EXCHANGE_SMTP_PASSWORD")
	v.BindEnv("storage.bucket", "EXCHANGE_STORAGE_BUCKET")
	v.BindEnv("storage.public_base_url", "EXCHANGE_STORAGE_PUBLIC_BASE_URL")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all settings.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "dev")
	v.SetDefault("server.base_url", "http://localhost:8080")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "exchange")
	v.SetDefault("database.password", "exchange")
	v.SetDefault("database.database", "exchange")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Storage defaults
	v.SetDefault("storage.bucket", "etown-exchange-images")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.public_base_url", "")

	// Auth defaults
	v.SetDefault("auth.session_expiry", "168h") // 7 days
	v.SetDefault("auth.email_domain", "@etown.edu")
	v.SetDefault("auth.verification_ttl", "24h")
	v.SetDefault("auth.min_password_length", 6)
	v.SetDefault("auth.oauth_callback_url", "http://localhost:8080")

	// SMTP defaults
	v.SetDefault("smtp.host", "localhost")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "no-reply@etownexchange.com")
}
