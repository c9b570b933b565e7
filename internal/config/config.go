package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	HTTPAddr      string
	LogFormat     string
	LogLevel      string
	EventsTopic   string
	PublishEvents bool
}

const (
	DefaultHTTPAddr    = ":8080"
	DefaultEventsTopic = "registry.class.registered"
)

// New loads configuration from a .env file, if present, and the
// environment. Unset variables fall back to defaults.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv reads configuration from the environment only.
func FromEnv() *Config {
	cfg := &Config{
		HTTPAddr:      getenv("CLASSMETA_HTTP_ADDR", DefaultHTTPAddr),
		LogFormat:     getenv("LOG_FORMAT", "text"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		EventsTopic:   getenv("CLASSMETA_EVENTS_TOPIC", DefaultEventsTopic),
		PublishEvents: true,
	}

	if publish := os.Getenv("CLASSMETA_PUBLISH_EVENTS"); publish != "" {
		if enabled, err := strconv.ParseBool(publish); err == nil {
			cfg.PublishEvents = enabled
		} else {
			log.Printf("Ignoring invalid CLASSMETA_PUBLISH_EVENTS=%q", publish)
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
