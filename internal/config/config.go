package config

import (
	"os"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string

	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURL  string

	FrontendURL string
	ArtworkDir  string
	EventFile   string

	Environment string
	SeedUsers   string
}

func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "skrapbuk"),
		DBPassword: getEnv("DB_PASSWORD", "skrapbuk_dev_password"),
		DBName:     getEnv("DB_NAME", "skrapbuk"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),

		DiscordClientID:     getEnv("SB_CLIENT_ID", ""),
		DiscordClientSecret: getEnv("SB_CLIENT_SECRET", ""),
		DiscordRedirectURL:  getEnv("SB_REDIRECT_URL", "http://localhost:8080/api/auth/callback"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		ArtworkDir:  getEnv("ARTWORK_DIR", "./artwork"),
		EventFile:   getEnv("EVENT_FILE", "./event.yml"),

		Environment: getEnv("ENVIRONMENT", "development"),
		SeedUsers:   getEnv("SEED_USERS", ""),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}
