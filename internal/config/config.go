package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string
	RedisURI string

	JWTSecret  string
	HRUsername string
	HRPassword string

	// DraftDebounce is how long draft writes are coalesced before
	// hitting Redis.
	DraftDebounce time.Duration

	// Chaos knobs, all zero by default (disabled)
	ChaosFailRate float64
	ChaosMinDelay time.Duration
	ChaosMaxDelay time.Duration
}

// Load reads configuration from the environment, with an optional .env
// file for local development
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "talentflow"),
		RedisURI: getEnv("REDIS_URI", "localhost:6379"),

		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),
		HRUsername: getEnv("HR_USERNAME", "admin"),
		HRPassword: getEnv("HR_PASSWORD", "admin"),

		DraftDebounce: time.Duration(getEnvInt("DRAFT_DEBOUNCE_MS", 600)) * time.Millisecond,

		ChaosFailRate: getEnvFloat("CHAOS_FAIL_RATE", 0),
		ChaosMinDelay: time.Duration(getEnvInt("CHAOS_MIN_DELAY_MS", 0)) * time.Millisecond,
		ChaosMaxDelay: time.Duration(getEnvInt("CHAOS_MAX_DELAY_MS", 0)) * time.Millisecond,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
