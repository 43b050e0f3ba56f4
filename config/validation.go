package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration against the rules of its environment.
func ValidateConfig(cfg *Config) error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		add("SERVER_PORT", "must be a port number between 1 and 65535")
	}

	switch cfg.StoreDriver {
	case StoreFile:
		if cfg.DataDir == "" {
			add("DATA_DIR", "is required for the file store")
		}
	case StoreSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite store")
		}
	case StorePostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			add("DB_HOST", "DB_HOST and DB_NAME are required for the postgres store")
		}
	default:
		add("STORE_DRIVER", fmt.Sprintf("unknown driver %q", cfg.StoreDriver))
	}

	switch cfg.CacheDriver {
	case CacheMemory:
	case CacheRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			add("REDIS_URL", "REDIS_URL or REDIS_HOST is required for the redis cache")
		}
	default:
		add("CACHE_DRIVER", fmt.Sprintf("unknown driver %q", cfg.CacheDriver))
	}

	if cfg.CacheDefaultTTL <= 0 {
		add("CACHE_DEFAULT_TTL", "must be positive")
	}
	if cfg.CacheMergedTTL <= 0 {
		add("CACHE_MERGED_TTL", "must be positive")
	}
	if cfg.UpstreamTimeout <= 0 {
		add("UPSTREAM_TIMEOUT", "must be positive")
	}
	if cfg.JWTExpiration <= 0 {
		add("JWT_EXPIRATION", "must be positive")
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			add("CORS_ALLOWED_ORIGINS", fmt.Sprintf("origin %q must be * or start with http:// or https://", origin))
		}
	}
	if cfg.RateLimitCreatePerHour < 0 {
		add("RATE_LIMIT_CREATE_PER_HOUR", "must not be negative")
	}

	if cfg.Env.IsProduction() {
		if cfg.JWTSecret == "" || cfg.JWTSecret == developmentJWTSecret {
			add("JWT_SECRET", "a real secret is required in production")
		}
		if cfg.StoreDriver == StorePostgres && cfg.DBPassword == "" {
			add("DB_PASSWORD", "is required in production")
		}
	}

	return errors.Join(errs...)
}
