package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	DBRetries  int

	RedisAddr    string
	KafkaBroker  string
	KafkaGroupID string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	PayslipURLTTL  time.Duration

	JWTSecret      string
	RBACModelPath  string
	TransitiveRBAC bool

	PayrollComputeTimeout     time.Duration
	PayrollComputeConcurrency int
	OutboxPollInterval        time.Duration
}

func Load() Config {
	return Config{
		Port:            getEnv("PORT", "3000"),
		ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "hrcore"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBRetries:  getEnvInt("DB_MAX_RETRIES", 5),

		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:  getEnv("KAFKA_BROKER", ""),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "go-hrcore"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "pay-stubs"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		PayslipURLTTL:  getEnvDuration("PAYSLIP_URL_TTL", 15*time.Minute),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		RBACModelPath:  getEnv("RBAC_MODEL_PATH", "internal/rbac/infra/model.conf"),
		TransitiveRBAC: getEnvBool("RBAC_TRANSITIVE_REQUIRES", false),

		PayrollComputeTimeout:     getEnvDuration("PAYROLL_COMPUTE_TIMEOUT", 10*time.Second),
		PayrollComputeConcurrency: getEnvInt("PAYROLL_COMPUTE_CONCURRENCY", 8),
		OutboxPollInterval:        getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
