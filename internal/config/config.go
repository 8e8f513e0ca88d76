package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Stripe   StripeConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	LLMProvider string // "openai" or "ollama"
	LLMModel    string
	BaseURL     string
	APIKey      string
}

type StripeConfig struct {
	SecretKey      string
	WebhookSecret  string
	MonthlyPriceId string
	AnnualPriceId  string
	SuccessURL     string
	CancelURL      string
	PortalReturn   string
}

type APIKeys struct {
	ChatCompletedTopic string // Auto-titling topic
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	clientURL := getEnv("CLIENT_URL", "http://localhost:5173")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          clientURL,
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "MakeMentors"),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "openai"),
			LLMModel:    getEnv("LLM_MODEL", "gpt-4o-mini"),
			BaseURL:     getEnv("LLM_BASE_URL", ""),
			APIKey:      getEnv("LLM_API_KEY", ""),
		},
		Stripe: StripeConfig{
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
			MonthlyPriceId: getEnv("STRIPE_PRICE_MONTHLY", ""),
			AnnualPriceId:  getEnv("STRIPE_PRICE_ANNUAL", ""),
			SuccessURL:     getEnv("STRIPE_SUCCESS_URL", clientURL+"/billing/success"),
			CancelURL:      getEnv("STRIPE_CANCEL_URL", clientURL+"/billing"),
			PortalReturn:   getEnv("STRIPE_PORTAL_RETURN_URL", clientURL+"/settings"),
		},
		Keys: APIKeys{
			ChatCompletedTopic: getEnv("CHAT_COMPLETED_TOPIC_NAME", "CHAT_COMPLETED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
