package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Origins allowed to call the HTTP API from a browser.
	AllowedOrigins []string

	// Remote store for patients, doctors and appointments.
	GatewayBaseURL string
	GatewayTimeout time.Duration

	// Doctor notification channel. When RedisAddr is set the pub/sub
	// transport is used; otherwise the legacy TCP transport on
	// NotifyBasePort + doctorID.
	NotifyBasePort int
	RedisAddr      string
	RedisPassword  string

	// Reminder scanner.
	ReminderInterval  time.Duration
	ReminderLookahead time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AllowedOrigins:    getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		GatewayBaseURL:    getEnv("GATEWAY_BASE_URL", "http://localhost/hospital_management/php_backend"),
		GatewayTimeout:    getEnvAsDuration("GATEWAY_TIMEOUT", 15*time.Second),
		NotifyBasePort:    getEnvAsInt("NOTIFY_BASE_PORT", 6000),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		ReminderInterval:  getEnvAsDuration("REMINDER_INTERVAL", 5*time.Minute),
		ReminderLookahead: getEnvAsDuration("REMINDER_LOOKAHEAD", time.Hour),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice retrieves a comma-separated environment variable or returns a default value
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
