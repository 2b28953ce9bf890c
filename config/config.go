package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	Env            string
	LogLevel       string
	Debug          bool
	TrustedProxies []string
	AllowedOrigins []string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret        string
	JWTRefreshSecret string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	SkipAuth bool // если true – отключает проверку JWT (для разработки)

	// Бизнес-параметры кошелька
	SignupBonus   float64 // стартовый бонус при регистрации
	MinDeposit    float64 // минимальная сумма пополнения
	MinWithdrawal float64 // минимальная сумма вывода

	// Котировки для дашборда
	MarketDataURL     string // upstream-фид (CoinGecko-совместимый)
	MarketDataTimeout time.Duration

	// Гео-определение страны посетителя
	GeoAPIURL string

	// Расписания фоновых задач (формат cron)
	SettlementCron string
	ReminderCron   string
	AccrualCron    string

	// Telegram-алерты для админов
	TelegramBotToken string
	TelegramChatID   int64

	// SMTP для почтовых уведомлений
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Debug:          getEnvAsBool("DEBUG", true),
		TrustedProxies: []string{},
		AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "postgres"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_ACCESS_SECRET", "default-access-secret"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "default-refresh-secret"),
		JWTAccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		JWTRefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 30*24*time.Hour),

		SkipAuth: getEnvAsBool("SKIP_AUTH", false),

		SignupBonus:   getEnvAsFloat("SIGNUP_BONUS", 10),
		MinDeposit:    getEnvAsFloat("MIN_DEPOSIT", 50),
		MinWithdrawal: getEnvAsFloat("MIN_WITHDRAWAL", 50),

		MarketDataURL:     getEnv("MARKET_DATA_URL", "https://api.coingecko.com/api/v3/coins/markets?vs_currency=usd&order=market_cap_desc&sparkline=true"),
		MarketDataTimeout: getEnvAsDuration("MARKET_DATA_TIMEOUT", 8*time.Second),

		GeoAPIURL: getEnv("GEO_API_URL", "http://ip-api.com/json"),

		SettlementCron: getEnv("SETTLEMENT_CRON", "0 0 * * 1"),
		ReminderCron:   getEnv("REMINDER_CRON", "0 9 * * *"),
		AccrualCron:    getEnv("ACCRUAL_CRON", "0 0 * * *"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvAsInt64("TELEGRAM_ADMIN_CHAT_ID", 0),

		// SMTP
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		cfg.TrustedProxies = strings.Split(proxies, ",")
	}

	log.Printf("📋 Конфигурация загружена: порт=%s, режим=%s, БД=%s, SkipAuth=%v",
		cfg.Port, cfg.Env, cfg.DBName, cfg.SkipAuth)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	strVal := getEnv(key, "")
	if val, err := strconv.ParseBool(strVal); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	strVal := getEnv(key, "")
	if val, err := strconv.Atoi(strVal); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	strVal := getEnv(key, "")
	if val, err := strconv.ParseInt(strVal, 10, 64); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	strVal := getEnv(key, "")
	if val, err := strconv.ParseFloat(strVal, 64); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strVal := getEnv(key, "")
	if val, err := time.ParseDuration(strVal); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	val := getEnv(key, "")
	if val == "" {
		return defaultValue
	}
	parts := strings.Split(val, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
