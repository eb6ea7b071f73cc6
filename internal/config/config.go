// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendAuto     = "auto"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                     string  `mapstructure:"PORT"`
	Env                      string  `mapstructure:"APP_ENV"`
	StorageBackend           string  `mapstructure:"STORAGE_BACKEND"`
	DatabaseURL              string  `mapstructure:"DATABASE_URL"`
	DBHost                   string  `mapstructure:"DB_HOST"`
	DBPort                   string  `mapstructure:"DB_PORT"`
	DBUser                   string  `mapstructure:"DB_USER"`
	DBPassword               string  `mapstructure:"DB_PASSWORD"`
	DBName                   string  `mapstructure:"DB_NAME"`
	DBSSLMode                string  `mapstructure:"DB_SSLMODE"`
	DBMaxOpenConns           int     `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int     `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int     `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	SQLitePath               string  `mapstructure:"SQLITE_PATH"`
	RedisURL                 string  `mapstructure:"REDIS_URL"`
	AllowedOrigins           string  `mapstructure:"ALLOWED_ORIGINS"`
	TracingEnabled           bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter          string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint             string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampleRatio       float64 `mapstructure:"TRACING_SAMPLE_RATIO"`
	PostsDefaultLimit        int     `mapstructure:"POSTS_DEFAULT_LIMIT"`
	SeedDemo                 bool    `mapstructure:"SEED_DEMO"`
}

// LoadConfig loads application configuration from file and environment
// variables. A .env file in the working directory, if present, seeds the
// environment without overriding variables that are already set.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base file is optional
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	viper.SetDefault("PORT", "8375")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORAGE_BACKEND", BackendAuto)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DB_HOST", "")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "selam")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "selam")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	viper.SetDefault("SQLITE_PATH", "selam.db")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLE_RATIO", 1.0)
	viper.SetDefault("POSTS_DEFAULT_LIMIT", 50)
	viper.SetDefault("SEED_DEMO", false)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	if c.StorageBackend == "" {
		c.StorageBackend = BackendAuto
	}
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.TracingExporter = strings.ToLower(strings.TrimSpace(c.TracingExporter))
}

// IsProduction reports whether the production profile is active.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// HasDatabase reports whether a postgres database has been configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != "" || c.DBHost != ""
}

// PostgresDSN returns DATABASE_URL when set, else a DSN built from the split fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	sslMode := c.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.StorageBackend {
	case BackendAuto, BackendPostgres, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of auto, postgres, sqlite, memory (got %q)", c.StorageBackend)
	}

	if c.StorageBackend == BackendPostgres && !c.HasDatabase() {
		return errors.New("STORAGE_BACKEND=postgres requires DATABASE_URL or DB_HOST")
	}
	if c.StorageBackend == BackendSQLite && c.SQLitePath == "" {
		return errors.New("SQLITE_PATH is required for the sqlite backend")
	}
	if c.DBMaxOpenConns <= 0 || c.DBMaxIdleConns < 0 {
		return errors.New("DB_MAX_OPEN_CONNS must be positive and DB_MAX_IDLE_CONNS non-negative")
	}
	if c.DBConnMaxLifetimeMinutes <= 0 {
		return errors.New("DB_CONN_MAX_LIFETIME_MINUTES must be positive")
	}
	if c.PostsDefaultLimit < 0 {
		return errors.New("POSTS_DEFAULT_LIMIT must not be negative")
	}
	if c.TracingEnabled {
		if c.TracingExporter != "stdout" && c.TracingExporter != "otlp" {
			return fmt.Errorf("TRACING_EXPORTER must be stdout or otlp (got %q)", c.TracingExporter)
		}
		if c.TracingSampleRatio < 0 || c.TracingSampleRatio > 1 {
			return errors.New("TRACING_SAMPLE_RATIO must be within [0, 1]")
		}
	}
	if c.RedisURL != "" && strings.Contains(c.RedisURL, "://") {
		if _, err := url.Parse(c.RedisURL); err != nil {
			return fmt.Errorf("REDIS_URL is not a valid URL: %w", err)
		}
	}

	// Strict checks for production
	if c.IsProduction() {
		if c.StorageBackend == BackendMemory {
			return errors.New("the memory storage backend is not allowed in production")
		}
		if c.SeedDemo {
			return errors.New("SEED_DEMO must not be enabled in production")
		}
		if c.StorageBackend == BackendPostgres || c.StorageBackend == BackendAuto {
			if c.DatabaseURL == "" && (c.DBSSLMode == "" || c.DBSSLMode == "disable") {
				return errors.New("DB_SSLMODE must not be disabled in production")
			}
			if c.DatabaseURL == "" && (c.DBPassword == "password" || c.DBPassword == "") {
				return errors.New("a strong DB_PASSWORD is required in production")
			}
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return nil
}
