package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	HTTPAddr     string
	DatabaseURL  string
	RedisAddr    string
	RedisPass    string
	JWTSecret    string
	ScheduleHour int // local hour of day the reminder job runs
}

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("Notification: No .env file found, relying on system env vars")
	}
	return AppConfig{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8013"),
		DatabaseURL:  getEnv("DATABASE_URL", "postgres://postgres:postgres@db:5432/notifications"),
		RedisAddr:    getEnv("REDIS_ADDR", "redis:6379"),
		RedisPass:    getEnv("REDIS_PASS", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		ScheduleHour: getEnvInt("SCHEDULE_HOUR", 8),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
