// Package config loads process configuration from defaults, an optional
// config file, environment variables and the Docker secrets directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSecretsDir is where Docker mounts secrets.
const DefaultSecretsDir = "/run/secrets"

// developmentJWTSecret signs tokens outside production when no secret is set.
const developmentJWTSecret = "development-secret"

// Store and cache drivers.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment `mapstructure:"-"`

	// Server configuration
	ServerHost      string        `mapstructure:"server_host"`
	ServerPort      string        `mapstructure:"server_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"cors_allowed_origins"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Persistence
	StoreDriver string `mapstructure:"store_driver"`
	DataDir     string `mapstructure:"data_dir"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	DBHost      string `mapstructure:"db_host"`
	DBPort      string `mapstructure:"db_port"`
	DBUser      string `mapstructure:"db_user"`
	DBPassword  string `mapstructure:"db_password"`
	DBName      string `mapstructure:"db_name"`
	DBSSLMode   string `mapstructure:"db_ssl_mode"`

	// Cache
	CacheDriver     string        `mapstructure:"cache_driver"`
	CacheDefaultTTL time.Duration `mapstructure:"cache_default_ttl"`
	CacheMergedTTL  time.Duration `mapstructure:"cache_merged_ttl"`

	// Redis configuration
	RedisURL      string `mapstructure:"redis_url"`
	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// JWT configuration
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`

	// Upstream providers
	UpstreamTimeout time.Duration `mapstructure:"upstream_timeout"`
	MealDBURL       string        `mapstructure:"mealdb_url"`
	DummyJSONURL    string        `mapstructure:"dummyjson_url"`
	CocktailDBURL   string        `mapstructure:"cocktaildb_url"`

	RateLimitCreatePerHour int `mapstructure:"rate_limit_create_per_hour"`
}

// LoadConfig reads configuration for the current environment. configPath
// may be empty, in which case config.yaml is looked up in the usual places
// and its absence is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is what most hosting platforms set.
	_ = v.BindEnv("server_port", "SERVER_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Env = GetEnvironment()
	applySecrets(cfg)

	if cfg.JWTSecret == "" && cfg.Env != Production {
		cfg.JWTSecret = developmentJWTSecret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "5000")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("cors_allowed_origins", []string{"*"})

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("store_driver", StoreFile)
	v.SetDefault("data_dir", "./data")
	v.SetDefault("sqlite_path", "recipenexus.db")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "recipenexus")
	v.SetDefault("db_ssl_mode", "disable")

	v.SetDefault("cache_driver", CacheMemory)
	v.SetDefault("cache_default_ttl", "1h")
	v.SetDefault("cache_merged_ttl", "5m")

	v.SetDefault("redis_url", "")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expiration", "2h")

	v.SetDefault("upstream_timeout", "8s")
	v.SetDefault("mealdb_url", "https://www.themealdb.com/api/json/v1/1")
	v.SetDefault("dummyjson_url", "https://dummyjson.com")
	v.SetDefault("cocktaildb_url", "https://www.thecocktaildb.com/api/json/v1/1")

	v.SetDefault("rate_limit_create_per_hour", 5)
}

// applySecrets fills credentials that were not set elsewhere from the
// secrets directory.
func applySecrets(cfg *Config) {
	fill := func(dst *string, name string) {
		if *dst == "" {
			*dst = readSecret(name)
		}
	}
	fill(&cfg.JWTSecret, "jwt_secret")
	fill(&cfg.DBPassword, "db_password")
	fill(&cfg.RedisPassword, "redis_password")
	fill(&cfg.RedisURL, "redis_url")
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = DefaultSecretsDir
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN returns the connection string for the postgres store driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.CacheDriver == CacheRedis
}
