// Package config provides environment configuration for the API server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Upstream endpoints. Overridable so tests and proxies can point the
	// clients at a stub server.
	GeocodingURL string
	ForecastURL  string
	SearchURL    string

	// Upstream timeouts (single best-effort calls, no retries)
	GeocodeTimeout  time.Duration
	ForecastTimeout time.Duration
	SearchTimeout   time.Duration
	ModelTimeout    time.Duration

	// Server-side fallback credentials; request-body keys take precedence.
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string
	SerperAPIKey    string
	DefaultProvider string

	// Optional JWT gate for /api/v1; disabled when empty.
	JWTSecret string

	// Optional NATS event publishing; disabled when empty.
	NATSURL   string
	NATSToken string

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Chat history sent upstream is capped to this many entries.
	HistoryLimit int

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),

		// Upstreams
		GeocodingURL: getEnv("GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		ForecastURL:  getEnv("FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
		SearchURL:    getEnv("SEARCH_URL", "https://google.serper.dev/search"),

		GeocodeTimeout:  getDurationEnv("GEOCODE_TIMEOUT", 20*time.Second),
		ForecastTimeout: getDurationEnv("FORECAST_TIMEOUT", 30*time.Second),
		SearchTimeout:   getDurationEnv("SEARCH_TIMEOUT", 20*time.Second),
		ModelTimeout:    getDurationEnv("MODEL_TIMEOUT", 30*time.Second),

		// Credentials
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		SerperAPIKey:    getEnv("SERPER_API_KEY", ""),
		DefaultProvider: getEnv("DEFAULT_PROVIDER", "openai"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", ""),

		// NATS
		NATSURL:   getEnv("NATS_URL", ""),
		NATSToken: getEnv("NATS_TOKEN", ""),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Chat history cap
		HistoryLimit: getIntEnv("HISTORY_LIMIT", 20),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
