package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// MongoDB
	MongoURI      string
	MongoDatabase string

	// API Configuration
	APIPort string
	APIHost string

	// CORS
	CORSOrigins []string

	// Kafka (events disabled when no brokers configured)
	KafkaBrokers string
	KafkaTopic   string

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "security-plus-admin"),
		APIPort:       getEnv("API_PORT", getEnv("PORT", "8000")),
		APIHost:       getEnv("API_HOST", "0.0.0.0"),
		CORSOrigins:   getEnvAsList("CORS_ORIGINS"),
		KafkaBrokers:  getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "catalog-events"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}, nil
}

// IsDevelopment reports whether error details may be included in API responses.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
