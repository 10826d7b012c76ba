package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        int
	DatabaseURL string
	NatsURL     string
	NatsToken   string
	LogLevel    string
	APIToken    string

	// LLM provider selection: "anthropic" or "openai".
	LLMProvider     string
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	Temperature     float64
	LLMTimeout      time.Duration
}

func Load() Config {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	return Config{
		Port:        envInt("SCRIBE_PORT", 8420),
		DatabaseURL: envStr("DATABASE_URL", ""),
		NatsURL:     envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:   envStr("NATS_TOKEN", ""),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		APIToken:    envStr("SCRIBE_API_TOKEN", ""),

		LLMProvider:     envStr("LLM_PROVIDER", "anthropic"),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIModel:     envStr("OPENAI_MODEL", "gpt-4o-mini"),
		Temperature:     envFloat("LLM_TEMPERATURE", 0.7),
		LLMTimeout:      envDuration("LLM_TIMEOUT", 120*time.Second),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
