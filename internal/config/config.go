package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config настройки всех точек входа (бот, API, терминальный мастер)
type Config struct {
	Environment string

	// Telegram бот
	TelegramToken        string
	BookingAPIURL        string
	BookingSubmitTimeout time.Duration
	WizardSessionTTL     time.Duration
	JanitorInterval      time.Duration

	// HTTP API
	HTTPAddr           string
	DBDSN              string
	RedisURL           string
	DedupeWindow       time.Duration
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	// BusinessTimezone зона, в которой сервер считает "сегодня" для проверки даты записи
	BusinessTimezone string

	// Почта
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	NotifyEmail       string
}

// Load читает .env (если он есть) и переменные окружения
func Load() *Config {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return &Config{
		Environment: getEnv("ENV", "development"),

		TelegramToken:        getEnv("TELEGRAM_TOKEN", ""),
		BookingAPIURL:        strings.TrimRight(getEnv("BOOKING_API_URL", "http://localhost:8080"), "/"),
		BookingSubmitTimeout: getEnvAsDuration("BOOKING_SUBMIT_TIMEOUT", 15*time.Second),
		WizardSessionTTL:     getEnvAsDuration("WIZARD_SESSION_TTL", 2*time.Hour),
		JanitorInterval:      getEnvAsDuration("WIZARD_JANITOR_INTERVAL", 10*time.Minute),

		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DBDSN:              getEnv("DB_DSN", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		DedupeWindow:       getEnvAsDuration("BOOKING_DEDUPE_WINDOW", 10*time.Minute),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
		BusinessTimezone:   getEnv("BUSINESS_TIMEZONE", "UTC"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Consultations"),
		NotifyEmail:       getEnv("NOTIFY_EMAIL", ""),
	}
}

// ValidateBot проверяет то, без чего бот не запустится
func (c *Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if c.BookingAPIURL == "" {
		return fmt.Errorf("BOOKING_API_URL is required but not set")
	}
	if c.BookingSubmitTimeout <= 0 {
		return fmt.Errorf("BOOKING_SUBMIT_TIMEOUT must be positive, got %s", c.BookingSubmitTimeout)
	}
	return nil
}

// ValidateAPI проверяет настройки HTTP API
func (c *Config) ValidateAPI() error {
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required but not set")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v rps burst %d", c.RateLimitRPS, c.RateLimitBurst)
	}
	return nil
}

// Location часовой пояс BUSINESS_TIMEZONE
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("load BUSINESS_TIMEZONE %q: %w", c.BusinessTimezone, err)
	}
	return loc, nil
}

// IsProduction true для ENV=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
