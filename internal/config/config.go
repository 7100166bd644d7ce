package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Feed        FeedConfig
	Idempotency IdempotencyConfig
}

type AppConfig struct {
	Port                string
	Environment         string
	LogFilePath         string
	ActivityLogPath     string
	NotificationLogPath string
	CorsAllowedOrigins  string
	JwtSecret           string
	EventBus            string // "memory" or "nats"
	NatsURL             string
	RedisURL            string // empty keeps idempotency keys in process memory
	OtelEnabled         bool
}

type DatabaseConfig struct {
	Connection  string
	AutoMigrate bool
	Verbose     bool
}

type FeedConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

type IdempotencyConfig struct {
	TTL time.Duration
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                getEnv("APP_PORT", "3000"),
			Environment:         getEnv("GO_ENV", "development"),
			LogFilePath:         getEnv("LOG_FILE_PATH", "logs/app.log"),
			ActivityLogPath:     getEnv("ACTIVITY_LOG_PATH", "logs/activity.log"),
			NotificationLogPath: getEnv("NOTIFICATION_LOG_PATH", "logs/notification.log"),
			CorsAllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JwtSecret:           getEnv("JWT_SECRET", "default_secret"),
			EventBus:            getEnv("EVENT_BUS", "memory"),
			NatsURL:             getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:            getEnv("REDIS_URL", ""),
			OtelEnabled:         getEnvAsBool("OTEL_ENABLED", false),
		},
		Database: DatabaseConfig{
			Connection:  getEnv("DB_CONNECTION_STRING", ""),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
			Verbose:     getEnvAsBool("DB_VERBOSE", false),
		},
		Feed: FeedConfig{
			DefaultPageSize: getEnvAsInt("FEED_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:     getEnvAsInt("FEED_MAX_PAGE_SIZE", 100),
		},
		Idempotency: IdempotencyConfig{
			TTL: time.Duration(getEnvAsInt("IDEMPOTENCY_TTL_HOURS", 24)) * time.Hour,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
