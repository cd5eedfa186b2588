package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL    string `envconfig:"DATABASE_URL" required:"true"`
	HTTPPort       string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	AppEnv         string `envconfig:"APP_ENV" default:"production"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"file://migrations"`

	// Redis Config
	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPass string `envconfig:"REDIS_PASSWORD"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	// Webhook Config
	WebhookURL        string        `envconfig:"WEBHOOK_URL"`
	WebhookSecret     string        `envconfig:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"5s"`
	WebhookMaxRetries int           `envconfig:"WEBHOOK_MAX_RETRIES" default:"3"`
	WebhookBaseDelay  time.Duration `envconfig:"WEBHOOK_BASE_DELAY" default:"1s"`

	// Stats Config
	StatsTimeWindowMinutes int `envconfig:"STATS_TIME_WINDOW_MINUTES" default:"60"`

	// API ключи для административных маршрутов
	APIKeys []string `envconfig:"API_KEYS"`

	// Сессии
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// Внешние сервисы (необязательные)
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	MapsAPIKey   string `envconfig:"MAPS_API_KEY"`

	// Координаты по умолчанию для отчетов без геолокации (центр Лагоса)
	DefaultLatitude  float64 `envconfig:"DEFAULT_LATITUDE" default:"6.4541"`
	DefaultLongitude float64 `envconfig:"DEFAULT_LONGITUDE" default:"3.3947"`

	// Планировщик
	StalePendingAfter       time.Duration `envconfig:"STALE_PENDING_AFTER" default:"10m"`
	SweepSchedule           string        `envconfig:"SWEEP_SCHEDULE" default:"@every 1m"`
	FacilityRefreshSchedule string        `envconfig:"FACILITY_REFRESH_SCHEDULE" default:"@every 5m"`
}

// IsDevelopment - подробные ошибки отдаются клиенту только в development
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process env vars: %w", err)
	}

	for i, key := range cfg.APIKeys {
		cfg.APIKeys[i] = strings.TrimSpace(key)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}
