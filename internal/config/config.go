package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	PairingExpiryInterval  time.Duration
	PairingExpiryBatchSize int
}

// PairingConfig holds the pairing-code allocator's family bounds.
type PairingConfig struct {
	CodeRangeLeft  int32
	CodeRangeRight int32
	CodeLifeSecs   int64
	Family         string
}

// IdentityConfig holds client-token signing configuration.
type IdentityConfig struct {
	ClientTokenSecret string
	ClientTokenTTL    time.Duration
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Worker   WorkerConfig
	Pairing  PairingConfig
	Identity IdentityConfig
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not present)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "54321"),
			User:     getEnv("DB_USER", "allocation_user"),
			Password: getEnv("DB_PASSWORD", "allocation_pass"),
			DBName:   getEnv("DB_NAME", "allocation_db"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 5),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Worker: WorkerConfig{
			PairingExpiryInterval:  getEnvAsDuration("PAIRING_EXPIRY_INTERVAL", 30*time.Second),
			PairingExpiryBatchSize: getEnvAsInt("PAIRING_EXPIRY_BATCH_SIZE", 100),
		},
		Pairing: PairingConfig{
			CodeRangeLeft:  int32(getEnvAsInt("PAIRING_CODE_RANGE_LEFT", 0)),
			CodeRangeRight: int32(getEnvAsInt("PAIRING_CODE_RANGE_RIGHT", 9999)),
			CodeLifeSecs:   int64(getEnvAsInt("PAIRING_CODE_LIFE_SECS", 300)),
			Family:         getEnv("PAIRING_CODE_FAMILY", "default"),
		},
		Identity: IdentityConfig{
			ClientTokenSecret: getEnv("CLIENT_TOKEN_SECRET", "dev-secret-change-me"),
			ClientTokenTTL:    getEnvAsDuration("CLIENT_TOKEN_TTL", 24*time.Hour),
		},
	}

	// Validate required fields
	if cfg.Database.User == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
