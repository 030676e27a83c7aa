package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RegistrationServiceConfig struct {
	Port         string
	PostgresCfg  PostgresConfig
	RabbitMQCfg  RabbitMQConfig
	RedisCfg     RedisConfig
	MinioCfg     MinioConfig
	GeminiAPICfg GeminiAPIConfig
	AuthCfg      AuthConfig
	SessionCfg   SessionConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RabbitMQConfig struct {
	Host     string
	Username string
	Password string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinioConfig struct {
	MinioURL       string
	MinioAccessKey string
	MinioSecretKey string
	MinioLocation  string
	MinioSecure    string
}

// GeminiAPIConfig holds one or more API keys; GEMINI_KEY is comma separated.
type GeminiAPIConfig struct {
	APIKeys   []string
	FlashName string
}

// AuthConfig.TokenTTL defaults to the session TTL; tokens are reissued on
// every authenticated request.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// SessionConfig bounds how long a wizard lives in Redis. SubmittedTTL applies
// once the registration has been handed off.
type SessionConfig struct {
	TTL          time.Duration
	SubmittedTTL time.Duration
}

// New loads a .env file when one is present and reads the rest from the
// environment.
func New() *RegistrationServiceConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env file: %v", err)
	}

	sessionTTL := getDurationOrDefault("SESSION_TTL", 2*time.Hour)

	return &RegistrationServiceConfig{
		Port: getEnvOrDefault("REGISTRATION_SERVICE_PORT", "8091"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "registration_service"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Host:     getEnvOrDefault("RABBITMQ_HOST", "rabbitmq"),
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getIntOrDefault("REDIS_DB", 0),
		},
		MinioCfg: MinioConfig{
			MinioURL:       getEnvOrDefault("MINIO_ENDPOINT", "http://localhost:9407"),
			MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minio"),
			MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minio123"),
			MinioLocation:  getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:    getEnvOrDefault("MINIO_SECURE", "false"),
		},
		GeminiAPICfg: GeminiAPIConfig{
			APIKeys:   getListOrDefault("GEMINI_KEY"),
			FlashName: getEnvOrDefault("GEMINI_FLASH_MODEL", "gemini-2.5-flash"),
		},
		AuthCfg: AuthConfig{
			JWTSecret: getEnvOrDefault("JWT_SECRET", "registration-dev-secret"),
			TokenTTL:  getDurationOrDefault("SESSION_TOKEN_TTL", sessionTTL),
		},
		SessionCfg: SessionConfig{
			TTL:          sessionTTL,
			SubmittedTTL: getDurationOrDefault("SESSION_SUBMITTED_TTL", 15*time.Minute),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getListOrDefault(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getDurationOrDefault accepts Go duration strings such as "90m" or "2h".
func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
