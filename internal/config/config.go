package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config неизменяемая конфигурация приложения.
// Собирается один раз при старте и передаётся по ссылке во все компоненты.
type Config struct {
	TelegramToken  string  `envconfig:"BOT_TOKEN" required:"true"`
	DBDSN          string  `envconfig:"DB_DSN" required:"true"`
	Environment    string  `envconfig:"ENV" default:"development"`
	AdminIDs       []int64 `envconfig:"ADMIN_IDS" required:"true"`
	MigrationsPath string  `envconfig:"MIGRATIONS_PATH" default:"migrations"`
	GreetingPhoto  string  `envconfig:"GREETING_PHOTO" default:"assets/psychologist_photo.jpg"`
}

// Load загружает конфигурацию из .env файла и переменных окружения
func Load() (*Config, error) {
	// .env опционален — в проде переменные приходят из окружения
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if len(cfg.AdminIDs) == 0 {
		return nil, fmt.Errorf("ADMIN_IDS is required but not set")
	}

	return &cfg, nil
}

// IsAdmin проверяет, входит ли пользователь в список администраторов
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
