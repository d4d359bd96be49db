package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	EventsBackendRedis = "redis"
	EventsBackendKafka = "kafka"
	EventsBackendLog   = "log"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL       string        `env:"DATABASE_URL"`
	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	HTTPPort          string        `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"LOG_FORMAT" envDefault:"json"`
	StorageDriver     string        `env:"STORAGE_DRIVER" envDefault:"postgres"`
	MigrationsPath    string        `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`

	// Redis Config
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass     string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Events Config
	EventsBackend string   `env:"EVENTS_BACKEND" envDefault:"redis"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaTopic    string   `env:"KAFKA_TOPIC" envDefault:"tourist-safety-events"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Zone / anomaly / score Config
	Timezone                  string        `env:"TIMEZONE" envDefault:"UTC"`
	AnomalyWindow             time.Duration `env:"ANOMALY_WINDOW" envDefault:"168h"`
	AnomalyInterval           time.Duration `env:"ANOMALY_INTERVAL" envDefault:"10m"`
	AnomalyLateNightThreshold int           `env:"ANOMALY_LATE_NIGHT_THRESHOLD" envDefault:"3"`
	AnomalySweepSchedule      string        `env:"ANOMALY_SWEEP_SCHEDULE" envDefault:"*/15 * * * *"`
	AlertCooldown             time.Duration `env:"ALERT_COOLDOWN" envDefault:"24h"`
	ScoreWindow               time.Duration `env:"SCORE_WINDOW" envDefault:"168h"`
	ScoreCacheTTL             time.Duration `env:"SCORE_CACHE_TTL" envDefault:"5m"`
	ResponderSearchRadiusKm   float64       `env:"RESPONDER_SEARCH_RADIUS_KM" envDefault:"5"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		ShutdownTimeout:   getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		StorageDriver:     getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "file://migrations"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		RedisPoolSize: getEnvAsInt("REDIS_POOL_SIZE", 10),

		EventsBackend: getEnv("EVENTS_BACKEND", EventsBackendRedis),
		KafkaBrokers:  getEnvAsList("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "tourist-safety-events"),

		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),

		Timezone:                  getEnv("TIMEZONE", "UTC"),
		AnomalyWindow:             getEnvAsDuration("ANOMALY_WINDOW", 7*24*time.Hour),
		AnomalyInterval:           getEnvAsDuration("ANOMALY_INTERVAL", 10*time.Minute),
		AnomalyLateNightThreshold: getEnvAsInt("ANOMALY_LATE_NIGHT_THRESHOLD", 3),
		AnomalySweepSchedule:      getEnv("ANOMALY_SWEEP_SCHEDULE", "*/15 * * * *"),
		AlertCooldown:             getEnvAsDuration("ALERT_COOLDOWN", 24*time.Hour),
		ScoreWindow:               getEnvAsDuration("SCORE_WINDOW", 7*24*time.Hour),
		ScoreCacheTTL:             getEnvAsDuration("SCORE_CACHE_TTL", 5*time.Minute),
		ResponderSearchRadiusKm:   getEnvAsFloat("RESPONDER_SEARCH_RADIUS_KM", 5),

		APIKeys: getEnvAsList("API_KEYS", nil),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.EventsBackend {
	case EventsBackendRedis, EventsBackendLog:
	case EventsBackendKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required for kafka events backend")
		}
	default:
		return fmt.Errorf("unknown EVENTS_BACKEND %q", c.EventsBackend)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location возвращает часовой пояс приложения
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую
func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
