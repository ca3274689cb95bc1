package config

import (
	"os"

	"github.com/joho/godotenv"
)

func init() {
	// .env is optional; in production everything comes from real env vars
	godotenv.Load(".env")
}

func Config(key string) string {
	return os.Getenv(key)
}

func ConfigOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
