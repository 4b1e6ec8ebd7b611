package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	SessionSecret string
	ServerPort    string
	Environment   string
	AdminUsername string
	AdminPassword string
	Debug         bool
}

func Load() *Config {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env file")
	}

	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "file:app.db"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-change-me"),
		ServerPort:    getEnv("PORT", "8000"),
		Environment:   getEnv("ENV", "development"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		Debug:         getEnv("DEBUG", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
