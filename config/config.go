package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Telegram TelegramConfig
	SMS      SMSConfig
	Geocode  GeocodeConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type TelegramConfig struct {
	Token       string
	PollTimeout int // long-poll timeout in seconds
}

type SMSConfig struct {
	Token    string // AfroMessage API token
	SenderID string
}

type GeocodeConfig struct {
	BaseURL string // empty means the public Nominatim endpoint
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	pollTimeout, _ := strconv.Atoi(getEnv("POLL_TIMEOUT", "60"))

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "tolo_delivery"),
		},
		Telegram: TelegramConfig{
			Token:       getEnv("TOKEN", ""),
			PollTimeout: pollTimeout,
		},
		SMS: SMSConfig{
			Token:    getEnv("AFRO_TOKEN", ""),
			SenderID: getEnv("AFRO_SENDER_ID", ""),
		},
		Geocode: GeocodeConfig{
			BaseURL: getEnv("NOMINATIM_URL", ""),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
