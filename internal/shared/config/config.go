package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL         string
	Port                string
	Env                 string
	JWTSecret           string
	AllowedOrigins      string
	ExactMatchThreshold float64
	SimilarityCacheTTL  int // seconds
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		Port:                os.Getenv("PORT"),
		Env:                 os.Getenv("ENV"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AllowedOrigins:      os.Getenv("ALLOWED_ORIGINS"),
		ExactMatchThreshold: getFloat("CHATBOT_EXACT_MATCH_THRESHOLD", 0.15),
		SimilarityCacheTTL:  getInt("SIMILARITY_CACHE_TTL_SECONDS", 600),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.AllowedOrigins == "" {
		cfg.AllowedOrigins = "http://localhost:5173,http://127.0.0.1:5173"
	}

	return cfg
}

func getFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using default %v", key, raw, fallback)
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using default %v", key, raw, fallback)
		return fallback
	}
	return v
}
