package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gearshare/service-rental/internal/platform/database"
	"github.com/joho/godotenv"
)

// ServiceConfig holds all configuration for the rental service.
type ServiceConfig struct {
	Port   string
	AppEnv string

	DBConfig database.PostgresConfig

	RedisAddr     string
	RedisPassword string

	KafkaBrokers     []string
	KafkaGroupPrefix string

	JWTSecret  string
	AccessTTL  time.Duration
	SessionTTL time.Duration

	CORSOrigins []string
}

// Load reads configuration from the environment. A .env file is loaded when
// present; real environment variables win over it.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()

	cfg := &ServiceConfig{
		Port:   ":" + get("SERVICE_PORT", "8080"),
		AppEnv: get("APP_ENV", "development"),
		DBConfig: database.PostgresConfig{
			Host:     get("DB_HOST", "localhost"),
			Port:     get("DB_PORT", "5432"),
			User:     get("DB_USER", "postgres"),
			Password: get("DB_PASSWORD", "postgres"),
			DBName:   get("DB_NAME", "rental"),
			SSLMode:  get("DB_SSLMODE", "disable"),
		},
		RedisAddr:        get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    get("REDIS_PASSWORD", ""),
		KafkaBrokers:     strings.Split(get("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaGroupPrefix: get("KAFKA_GROUP_PREFIX", "rental."),
		JWTSecret:        get("JWT_SECRET", "dev-secret-do-not-use"),
		AccessTTL:        getDuration("JWT_ACCESS_TTL_MINUTES", 15) * time.Minute,
		SessionTTL:       getDuration("SESSION_TTL_HOURS", 168) * time.Hour,
	}

	if origins := get("CORS_ORIGINS", ""); origins != "" {
		cfg.CORSOrigins = strings.Split(origins, ",")
	}

	return cfg, nil
}

func get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}
