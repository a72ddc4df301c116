package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/playperu/cardgame/internal/cardgame"
)

type Config struct {
	AppEnv   string     `env:"APP_ENV" envDefault:"development"`
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/cardgame.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	DeckAPIBaseURL string          `env:"DECK_API_BASE_URL" envDefault:"https://deckofcardsapi.com/api/deck/"`
	DeckAPITimeout time.Duration   `env:"DECK_API_TIMEOUT" envDefault:"10s"`
	HandLocale     cardgame.Locale `env:"HAND_LOCALE" envDefault:"en"`

	// RedisURL enables the game history cache when set.
	RedisURL      string        `env:"REDIS_URL"`
	RedisCacheTTL time.Duration `env:"REDIS_CACHE_TTL" envDefault:"1h"`

	TracesExporter    string  `env:"OTEL_TRACES_EXPORTER" envDefault:"none"`
	TracesSampleRatio float64 `env:"OTEL_TRACES_SAMPLE_RATIO" envDefault:"1.0"`
}

// Load reads an optional .env file from the working directory and then
// parses the environment. Variables already set win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.DeckAPITimeout <= 0 {
		return nil, fmt.Errorf("DECK_API_TIMEOUT must be positive, got %s", cfg.DeckAPITimeout)
	}
	return &cfg, nil
}
