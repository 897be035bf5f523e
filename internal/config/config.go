package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server's environment-derived settings. Values come
// from the environment (optionally via a .env file loaded in main).
type Config struct {
	Port          string
	AllowedOrigin string

	// TrickPause is how long a resolved trick stays on the table before
	// it is cleared; RoundPause is the delay between the round-over
	// announcement and the redeal.
	TrickPause time.Duration
	RoundPause time.Duration
}

func Load() Config {
	return Config{
		Port:          getEnv("PORT", "8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		TrickPause:    getEnvDuration("TRICK_PAUSE", 3*time.Second),
		RoundPause:    getEnvDuration("ROUND_PAUSE", 5*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
