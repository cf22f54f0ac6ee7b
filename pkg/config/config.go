package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends accepted by STORE_BACKEND.
const (
	StoreBackendMemory   = "memory"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

// Event bus backends accepted by EVENTS_BACKEND.
const (
	EventsBackendMemory = "memory"
	EventsBackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Store    StoreConfig
	Events   EventsConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Platform PlatformConfig
	OTEL     OTELConfig
}

// AppConfig holds process-wide settings
type AppConfig struct {
	Name string
	Env  string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// StoreConfig selects where collection slots are persisted
type StoreConfig struct {
	Backend      string
	KeyPrefix    string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// EventsConfig selects how dashboard events travel between instances
type EventsConfig struct {
	Backend string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// PlatformConfig holds the initial values of the admin toggles.
type PlatformConfig struct {
	SelfSignupAllowed bool
	GmailRequired     bool
	MaintenanceMode   bool
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "medicare-portal"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Store: StoreConfig{
			Backend:      getEnv("STORE_BACKEND", StoreBackendMemory),
			KeyPrefix:    getEnv("STORE_KEY_PREFIX", ""),
			CacheEnabled: getEnvAsBool("STORE_CACHE_ENABLED", false),
			CacheTTL:     getEnvAsDuration("STORE_CACHE_TTL", 5*time.Minute),
		},
		Events: EventsConfig{
			Backend: getEnv("EVENTS_BACKEND", EventsBackendMemory),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "medicare"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Platform: PlatformConfig{
			SelfSignupAllowed: getEnvAsBool("PLATFORM_SELF_SIGNUP", true),
			GmailRequired:     getEnvAsBool("PLATFORM_GMAIL_REQUIRED", true),
			MaintenanceMode:   getEnvAsBool("PLATFORM_MAINTENANCE", false),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "medicare-portal"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	switch cfg.Store.Backend {
	case StoreBackendMemory, StoreBackendRedis, StoreBackendPostgres:
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q", cfg.Store.Backend)
	}

	switch cfg.Events.Backend {
	case EventsBackendMemory, EventsBackendRedis:
	default:
		return nil, fmt.Errorf("unsupported EVENTS_BACKEND %q", cfg.Events.Backend)
	}

	return cfg, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServerAddr returns the listen address
func (c *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
