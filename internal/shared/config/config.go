package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	Env         string

	// Analytics
	CommissionRate  float64
	RefreshInterval time.Duration
	Timezone        string // IANA zone used for hour-of-day bucketing

	// LLM
	LLMProvider string
	OpenAIKey   string
	GroqKey     string
	LLMModel    string

	// Auth
	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	UseMemoryStore bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           os.Getenv("PORT"),
		Env:            os.Getenv("ENV"),
		Timezone:       os.Getenv("ANALYTICS_TIMEZONE"),
		LLMProvider:    os.Getenv("LLM_PROVIDER"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		GroqKey:        os.Getenv("GROQ_API_KEY"),
		LLMModel:       os.Getenv("LLM_MODEL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		UseMemoryStore: os.Getenv("USE_MEMORY_STORE") == "true",
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.Timezone == "" {
		// Dashboard copy references Central time, so bucket there by default.
		cfg.Timezone = "America/Chicago"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "loadrush-dev-secret"
	}

	cfg.CommissionRate = 0.05
	if raw := os.Getenv("COMMISSION_RATE"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			cfg.CommissionRate = v
		}
	}

	cfg.RefreshInterval = 60 * time.Second
	if raw := os.Getenv("REFRESH_INTERVAL_SECONDS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			cfg.RefreshInterval = time.Duration(v) * time.Second
		}
	}

	return cfg
}
