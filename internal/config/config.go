package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	Debug         bool
	LogFile       string
	Workers       int

	QuestionsFile   string
	AudioDir        string
	ShuffleOptions  bool
	IdleTimeout     time.Duration
	JanitorInterval time.Duration

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HTTPAddr string
}

// Load подхватывает .env, если он есть, и читает переменные окружения.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to read .env: %v", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		Debug:         envBool("BOT_DEBUG", false),
		LogFile:       os.Getenv("LOG_FILE"),
		Workers:       envInt("BOT_WORKERS", 8),

		QuestionsFile:   envOr("QUIZ_QUESTIONS_FILE", "questions.txt"),
		AudioDir:        envOr("QUIZ_AUDIO_DIR", "audio"),
		ShuffleOptions:  envBool("QUIZ_SHUFFLE_OPTIONS", false),
		IdleTimeout:     envDuration("QUIZ_IDLE_TIMEOUT", 30*time.Minute),
		JanitorInterval: envDuration("QUIZ_JANITOR_INTERVAL", time.Minute),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    os.Getenv("DB_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PWD"),
		RedisDB:       envInt("REDIS_DB", 0),

		HTTPAddr: envOr("HTTP_ADDR", ":8080"),
	}

	if cfg.TelegramToken == "" {
		return cfg, errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	// HTTP_ADDR=off выключает служебный HTTP
	if strings.EqualFold(cfg.HTTPAddr, "off") {
		cfg.HTTPAddr = ""
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %v", key, v, def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
