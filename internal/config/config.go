package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mkl159/StockToPlate/pkg/locales"
)

// Config holds every runtime setting. It is built once at startup and
// passed by value, never mutated afterwards.
type Config struct {
	TelegramBotToken string
	GrocyBaseURL     string
	GrocyAPIKey      string
	OpenAIAPIKey     string
	OpenAIModel      string
	Language         string
	GuestsFile       string
	MetricsAddr      string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		GrocyBaseURL:     os.Getenv("GROCY_BASE_URL"),
		GrocyAPIKey:      os.Getenv("GROCY_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o"),
		Language:         getEnv("LANGUAGE", "FR"),
		GuestsFile:       getEnv("GUESTS_FILE", "convives.csv"),
		MetricsAddr:      getEnv("METRICS_ADDR", ":8090"),
	}

	if cfg.TelegramBotToken == "" {
		return Config{}, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	if cfg.GrocyBaseURL == "" {
		return Config{}, fmt.Errorf("GROCY_BASE_URL is not set")
	}
	if cfg.GrocyAPIKey == "" {
		return Config{}, fmt.Errorf("GROCY_API_KEY is not set")
	}
	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if !locales.Supported(cfg.Language) {
		return Config{}, fmt.Errorf("unsupported LANGUAGE %q (expected FR, EN or ES)", cfg.Language)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
