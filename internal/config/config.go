// Package config loads client configuration from the environment. A
// .env file is honored when present so local runs need no exported
// variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the seat-selection client.
type Config struct {
	APIBaseURL     string        // booking API base, e.g. http://localhost:8080/api
	PushBaseURL    string        // push channel base, e.g. ws://localhost:8080/api
	FlightID       string        // outbound flight id
	ReturnFlightID string        // return flight id, empty for one-way
	Passengers     int           // seats to select per leg
	HoldWindow     time.Duration // seat hold window
}

// Load reads configuration from the environment with sensible defaults
// for local development against the stub API.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8080/api"),
		PushBaseURL:    getEnv("PUSH_BASE_URL", "ws://localhost:8080/api"),
		FlightID:       getEnv("FLIGHT_ID", "FL001"),
		ReturnFlightID: os.Getenv("RETURN_FLIGHT_ID"),
		Passengers:     getEnvInt("PASSENGERS", 1),
		HoldWindow:     time.Duration(getEnvInt("HOLD_WINDOW_SECONDS", 600)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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
