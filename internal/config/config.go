package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - настройки бота, читаются из переменных окружения
type Config struct {
	TelegramToken string
	AdminID       int64
	Environment   string

	// Хранилище расписания: файл по умолчанию, Postgres при заданном DSN
	ScheduleFile string
	DBDSN        string

	// Необязательные шаги анкеты записи
	AskLevel      bool
	AskInstrument bool

	// Таймаут неактивности сессии
	SessionTTL time.Duration
}

// Load читает конфигурацию из окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Environment:   os.Getenv("ENV"),
		ScheduleFile:  os.Getenv("SCHEDULE_FILE"),
		DBDSN:         os.Getenv("DB_DSN"),
		AskLevel:      boolEnv("ASK_LEVEL", true),
		AskInstrument: boolEnv("ASK_INSTRUMENT", true),
	}

	// Дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.ScheduleFile == "" {
		cfg.ScheduleFile = "schedule.json"
	}

	cfg.SessionTTL = 30 * time.Minute
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("SESSION_TTL is not a valid duration: %w", err)
		}
		cfg.SessionTTL = ttl
	}

	// Обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	rawAdmin := os.Getenv("ADMIN_ID")
	if rawAdmin == "" {
		return nil, fmt.Errorf("ADMIN_ID is required but not set")
	}
	adminID, err := strconv.ParseInt(rawAdmin, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_ID is not a valid telegram id: %w", err)
	}
	cfg.AdminID = adminID

	log.Printf("Config loaded\n")
	return cfg, nil
}

func boolEnv(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
