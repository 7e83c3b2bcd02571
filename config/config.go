package config

import (
	"os"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	// load .env once per lookup is fine for startup-time config
	godotenv.Load(".env")
	return os.Getenv(key)
}

func ConfigOr(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}
