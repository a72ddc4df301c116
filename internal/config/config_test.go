package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.DBPath != "data/cardgame.db" {
		t.Errorf("DBPath = %q, want data/cardgame.db", cfg.DBPath)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
	if cfg.DeckAPIBaseURL != "https://deckofcardsapi.com/api/deck/" {
		t.Errorf("DeckAPIBaseURL = %q", cfg.DeckAPIBaseURL)
	}
	if cfg.DeckAPITimeout != 10*time.Second {
		t.Errorf("DeckAPITimeout = %s, want 10s", cfg.DeckAPITimeout)
	}
	if cfg.HandLocale != "en" {
		t.Errorf("HandLocale = %q, want en", cfg.HandLocale)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", cfg.RedisURL)
	}
	if cfg.RedisCacheTTL != time.Hour {
		t.Errorf("RedisCacheTTL = %s, want 1h", cfg.RedisCacheTTL)
	}
	if cfg.TracesExporter != "none" {
		t.Errorf("TracesExporter = %q, want none", cfg.TracesExporter)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DECK_API_TIMEOUT", "2s")
	t.Setenv("HAND_LOCALE", "pt")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
	if cfg.DeckAPITimeout != 2*time.Second {
		t.Errorf("DeckAPITimeout = %s, want 2s", cfg.DeckAPITimeout)
	}
	if cfg.HandLocale != "pt" {
		t.Errorf("HandLocale = %q, want pt", cfg.HandLocale)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HTTP_ADDR", ":7000")

	content := "DB_PATH=/tmp/from-dotenv.db\nHTTP_ADDR=:1111\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("DB_PATH") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBPath != "/tmp/from-dotenv.db" {
		t.Errorf("DBPath = %q, want value from .env", cfg.DBPath)
	}
	if cfg.HTTPAddr != ":7000" {
		t.Errorf("HTTPAddr = %q, want environment to win over .env", cfg.HTTPAddr)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "DECK_API_TIMEOUT", "soon"},
		{"zero timeout", "DECK_API_TIMEOUT", "0s"},
		{"bad log level", "LOG_LEVEL", "LOUD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
