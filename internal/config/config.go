package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/betstack/bet-engine/internal/models"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the service
type Config struct {
	Service  ServiceConfig
	Betting  BettingConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	API      APIConfig
	HTTP     HTTPConfig
	Logging  LoggingConfig
}

// ServiceConfig holds service-level configuration
type ServiceConfig struct {
	Name        string
	Environment string
}

// BettingConfig holds the betting business tunables
type BettingConfig struct {
	MaxSelectionsPerTicket int
	MinStake               decimal.Decimal
	MaxStake               decimal.Decimal
	BetableStatuses        []models.MatchStatus
	RejectOnOddsDrift      bool
}

// Betable reports whether a match in the given status accepts bets
func (b BettingConfig) Betable(status models.MatchStatus) bool {
	for _, s := range b.BetableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	URL      string
}

// RedisConfig holds redis connection configuration
type RedisConfig struct {
	Addr        string
	MatchTTLSec int
}

// KafkaConfig holds Kafka broker configuration
type KafkaConfig struct {
	Brokers []string
}

// APIConfig holds the API server configuration
type APIConfig struct {
	Port int
}

// HTTPConfig holds the health/metrics HTTP server configuration
type HTTPConfig struct {
	Port int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() (*Config, error) {
	minStake, err := getEnvDecimal("MIN_STAKE", decimal.NewFromInt(500))
	if err != nil {
		return nil, err
	}
	maxStake, err := getEnvDecimal("MAX_STAKE", decimal.NewFromInt(5000))
	if err != nil {
		return nil, err
	}
	if maxStake.LessThan(minStake) {
		return nil, fmt.Errorf("MAX_STAKE %s below MIN_STAKE %s", maxStake, minStake)
	}

	betable := make([]models.MatchStatus, 0, 2)
	for _, s := range getEnvSlice("BETABLE_STATUSES", []string{"upcoming", "open"}) {
		betable = append(betable, models.MatchStatus(s))
	}

	cfg := &Config{
		Service: ServiceConfig{
			Name:        getEnv("SERVICE_NAME", "bet-engine"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Betting: BettingConfig{
			MaxSelectionsPerTicket: getEnvInt("MAX_SELECTIONS_PER_TICKET", 10),
			MinStake:               minStake,
			MaxStake:               maxStake,
			BetableStatuses:        betable,
			RejectOnOddsDrift:      getEnvBool("ODDS_REJECT_ON_DRIFT", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Database: getEnv("DB_NAME", "betengine"),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
			MatchTTLSec: getEnvInt("REDIS_MATCH_TTL_SECONDS", 5),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
		},
		API: APIConfig{
			Port: getEnvInt("API_PORT", 8082),
		},
		HTTP: HTTPConfig{
			Port: getEnvInt("HTTP_PORT", 9092),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Build database URL
	cfg.Database.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database,
	)

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDecimal gets a decimal environment variable or returns a default value
func getEnvDecimal(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

// getEnvSlice gets a comma-separated environment variable as a slice
func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
