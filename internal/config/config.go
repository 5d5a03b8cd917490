package config

import (
	"os"
	"strconv"
)

type Config struct {
	Transport string
	HTTPPort  string
	LogLevel  string

	BackendMode  string
	OutputSchema string

	OpenAIBaseURL   string
	OpenAIAPIKey    string
	OpenAIModel     string
	MaxOutputTokens int
	BackendTimeout  int
	BackendRPS      float64
	BackendBurst    int
	BreakerEnabled  bool

	MockDelayMillis int

	MetricsPort string
}

func Load() Config {
	return Config{
		Transport: mustEnv("MCP_TRANSPORT", "stdio"),
		HTTPPort:  mustEnv("HTTP_PORT", "8080"),
		LogLevel:  mustEnv("LOG_LEVEL", "info"),

		BackendMode:  mustEnv("BACKEND_MODE", "openai"),
		OutputSchema: mustEnv("OUTPUT_SCHEMA", "confidence"),

		OpenAIBaseURL:   mustEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:    mustEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     mustEnv("OPENAI_MODEL", "gpt-4o-mini"),
		MaxOutputTokens: mustEnvInt("MAX_OUTPUT_TOKENS", 300),
		BackendTimeout:  mustEnvInt("BACKEND_TIMEOUT_SECONDS", 120),
		BackendRPS:      mustEnvFloat("BACKEND_RPS", 2),
		BackendBurst:    mustEnvInt("BACKEND_BURST", 4),
		BreakerEnabled:  mustEnvBool("BREAKER_ENABLED", true),

		MockDelayMillis: mustEnvInt("MOCK_DELAY_MILLIS", 300),

		MetricsPort: mustEnv("METRICS_PORT", "9090"),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
