package server

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playperu/cardgame/internal/cardgame"
)

func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         "localhost:1",
		DialTimeout:  10 * time.Millisecond,
		ReadTimeout:  10 * time.Millisecond,
		WriteTimeout: 10 * time.Millisecond,
		MaxRetries:   -1,
	})
}

func TestCachedStoreFallsThroughWhenRedisIsDown(t *testing.T) {
	rdb := deadRedis()
	defer rdb.Close()

	store := NewCachedStore(setupStore(t), rdb, time.Minute, slog.Default())
	ctx := context.Background()

	saved, err := store.SaveGame(ctx, sampleGame(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.GameByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Winner != saved.Winner || len(got.Players) != len(saved.Players) {
		t.Errorf("got %+v, want %+v", got, saved)
	}

	if _, err := store.GameByID(ctx, saved.ID+100); !errors.Is(err, cardgame.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}

	games, err := store.ListGames(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games) != 1 {
		t.Errorf("expected 1 game, got %d", len(games))
	}
}

func TestGameDocRoundTrip(t *testing.T) {
	g := sampleGame(time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC))
	g.ID = 7
	for i := range g.Players {
		g.Players[i].ID = int64(i + 1)
		g.Players[i].GameID = 7
	}

	back := toGameDoc(g).game()
	if back.ID != g.ID || back.DeckID != g.DeckID || back.Winner != g.Winner || !back.PlayedAt.Equal(g.PlayedAt) {
		t.Errorf("game fields changed: %+v", back)
	}
	for i := range g.Players {
		if back.Players[i] != g.Players[i] {
			t.Errorf("player %d = %+v, want %+v", i, back.Players[i], g.Players[i])
		}
	}
}

func TestCacheKey(t *testing.T) {
	if got := cacheKey(42); got != "cardgame:game:42" {
		t.Errorf("cacheKey(42) = %q", got)
	}
}
