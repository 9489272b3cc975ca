package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DatabaseURL      string
	MigrateOnStartup bool

	RedisURL        string
	RankingCacheTTL time.Duration

	JWTSecret       string
	JWTAccessExpiry time.Duration

	MinIOEndpoint       string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	AttachmentURLExpiry time.Duration
	MaxAttachmentSize   int64

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
	Domain       string

	CommentMaxDepth int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		MigrateOnStartup: getBoolEnv("MIGRATE_ON_STARTUP", true),

		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		RankingCacheTTL: getDurationEnv("RANKING_CACHE_TTL", time.Minute),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: getDurationEnv("JWT_ACCESS_EXPIRY", 15*time.Minute),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET", "formacao-anexos"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		AttachmentURLExpiry: getDurationEnv("ATTACHMENT_URL_EXPIRY", time.Hour),
		MaxAttachmentSize:   int64(getIntEnv("MAX_ATTACHMENT_SIZE", 10<<20)),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		Domain:       getEnv("DOMAIN", "localhost:5173"),

		CommentMaxDepth: getIntEnv("COMMENT_MAX_DEPTH", 32),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
