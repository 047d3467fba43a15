// campus-crm/config/config.go
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// JwtKey signs and verifies session tokens. Loaded once at startup.
var JwtKey []byte

// LoadEnv reads the .env file (if present) and validates the variables
// the application cannot run without.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, relying on the process environment")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET environment variable is not set")
		os.Exit(1)
	}
	JwtKey = []byte(secret)
}

// Getenv returns the value of the environment variable or the fallback
// when it is unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
