package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries every process-level setting, loaded once in main and
// injected from there.
type Config struct {
	Port          string
	MongoURI      string
	DBName        string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      os.Getenv("MONGO_URI"),
		DBName:        getEnv("DB_NAME", "property_listing"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI not set in environment")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set in environment")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
