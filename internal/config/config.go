package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Data access types accepted in DATA_ACCESS_TYPE
const (
	DataAccessGorm      = "gorm"
	DataAccessProcedure = "procedure"
)

// Config holds all application configuration
type Config struct {
	Database    DatabaseConfig
	Queue       QueueConfig
	API         APIConfig
	Worker      WorkerConfig
	Tracing     TracingConfig
	LogLevel    string `validate:"oneof=debug info warn error"`
	Diagnostics DiagnosticsConfig
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host        string `validate:"required"`
	Port        int    `validate:"min=1,max=65535"`
	User        string `validate:"required"`
	Password    string
	DBName      string `validate:"required"`
	SSLMode     string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
	AutoMigrate bool
	// DataAccessType selects the customer storage backend
	DataAccessType string `validate:"oneof=gorm procedure"`
}

// QueueConfig holds queue configuration (Redis). An empty RedisURL disables events.
type QueueConfig struct {
	RedisURL  string
	QueueName string `validate:"required"`
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port           int      `validate:"min=1,max=65535"`
	AllowedOrigins []string `validate:"dive,required"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	Concurrency   int `validate:"min=1"`
	MaxRetryCount int `validate:"min=0"`
}

// TracingConfig holds OpenTelemetry exporter configuration
type TracingConfig struct {
	Exporter string `validate:"oneof=none stdout otlp"`
	Endpoint string `validate:"required_if=Exporter otlp"`
}

// DiagnosticsConfig holds the metrics/pprof server configuration. Port 0 disables it.
type DiagnosticsConfig struct {
	Port int `validate:"min=0,max=65535"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	apiPort, err := strconv.Atoi(getEnv("API_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_PORT: %w", err)
	}

	workerConcurrency, err := strconv.Atoi(getEnv("WORKER_CONCURRENCY", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKER_CONCURRENCY: %w", err)
	}

	maxRetryCount, err := strconv.Atoi(getEnv("MAX_RETRY_COUNT", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_RETRY_COUNT: %w", err)
	}

	diagnosticsPort, err := strconv.Atoi(getEnv("DIAGNOSTICS_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid DIAGNOSTICS_PORT: %w", err)
	}

	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           dbPort,
			User:           getEnv("DB_USER", "customer_manager"),
			Password:       getEnv("DB_PASSWORD", "customer_manager"),
			DBName:         getEnv("DB_NAME", "customer_manager"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			AutoMigrate:    autoMigrate,
			DataAccessType: NormalizeDataAccessType(getEnv("DATA_ACCESS_TYPE", DataAccessGorm)),
		},
		Queue: QueueConfig{
			RedisURL:  os.Getenv("REDIS_URL"),
			QueueName: getEnv("QUEUE_NAME", "customer_events"),
		},
		API: APIConfig{
			Port:           apiPort,
			AllowedOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		},
		Worker: WorkerConfig{
			Concurrency:   workerConcurrency,
			MaxRetryCount: maxRetryCount,
		},
		Tracing: TracingConfig{
			Exporter: strings.ToLower(getEnv("TRACING_EXPORTER", "none")),
			Endpoint: os.Getenv("OTLP_ENDPOINT"),
		},
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Diagnostics: DiagnosticsConfig{
			Port: diagnosticsPort,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// NormalizeDataAccessType maps the accepted spellings of a backend name onto
// DataAccessGorm or DataAccessProcedure. Unknown values are returned lowercased
// so validation can reject them.
func NormalizeDataAccessType(value string) string {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "gorm", "orm", "entityframework":
		return DataAccessGorm
	case "procedure", "procedures", "sqlstoredprocedures", "storedprocedures":
		return DataAccessProcedure
	default:
		return v
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
