package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Telegram bot
	BotToken    string
	AdminChatID int64

	// Backend API (bot side)
	APIBaseURL     string
	RequestTimeout time.Duration

	// Bot behavior
	PageSize       int
	ThrottleWindow time.Duration
	// Configured but not consulted by the review flow; kept as an
	// operator-visible knob until the product decides on cooldown rules.
	ReviewCooldown time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	// Optional .env for local runs; real deployments set env vars directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "medrating_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		BotToken:    getEnv("BOT_TOKEN", ""),
		AdminChatID: parseInt64(getEnv("ADMIN_CHAT_ID", "0")),

		APIBaseURL:     getEnv("API_BASE_URL", "http://127.0.0.1:8080/api"),
		RequestTimeout: parseDuration(getEnv("REQUEST_TIMEOUT", "10s"), 10*time.Second),

		PageSize:       parseInt(getEnv("PAGE_SIZE", "10"), 10),
		ThrottleWindow: parseDuration(getEnv("THROTTLE_WINDOW", "1s"), time.Second),
		ReviewCooldown: parseDuration(getEnv("REVIEW_COOLDOWN", "24h"), 24*time.Hour),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
