package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	CloudinaryURL string
	CORSOrigin    string
}

func Load() *Config {
	// Missing .env is fine, env vars may come from the environment directly.
	_ = godotenv.Load()

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "chirp"),
		DBPassword:    getEnv("DB_PASSWORD", "chirp_dev_password"),
		DBName:        getEnv("DB_NAME", "chirp"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}
