package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playperu/cardgame/internal/cardgame"
	"github.com/playperu/cardgame/internal/game"
)

const cacheKeyPrefix = "cardgame:game:"

// Document types cached as JSON in Redis.

type gameDoc struct {
	ID           int64       `json:"id"`
	PlayerCount  int         `json:"playerCount"`
	CardsPerHand int         `json:"cardsPerHand"`
	DeckID       string      `json:"deckId"`
	Winner       string      `json:"winner"`
	HighestScore int         `json:"highestScore"`
	PlayedAt     time.Time   `json:"playedAt"`
	Players      []playerDoc `json:"players"`
}

type playerDoc struct {
	ID         int64  `json:"id"`
	Identifier string `json:"identifier"`
	Score      int    `json:"score"`
	Hand       string `json:"hand"`
}

func toGameDoc(g cardgame.GameHistory) gameDoc {
	d := gameDoc{
		ID:           g.ID,
		PlayerCount:  g.PlayerCount,
		CardsPerHand: g.CardsPerHand,
		DeckID:       g.DeckID,
		Winner:       g.Winner,
		HighestScore: g.HighestScore,
		PlayedAt:     g.PlayedAt,
		Players:      make([]playerDoc, len(g.Players)),
	}
	for i, p := range g.Players {
		d.Players[i] = playerDoc{ID: p.ID, Identifier: p.Identifier, Score: p.Score, Hand: p.Hand}
	}
	return d
}

func (d gameDoc) game() cardgame.GameHistory {
	g := cardgame.GameHistory{
		ID:           d.ID,
		PlayerCount:  d.PlayerCount,
		CardsPerHand: d.CardsPerHand,
		DeckID:       d.DeckID,
		Winner:       d.Winner,
		HighestScore: d.HighestScore,
		PlayedAt:     d.PlayedAt,
		Players:      make([]cardgame.Player, len(d.Players)),
	}
	for i, p := range d.Players {
		g.Players[i] = cardgame.Player{ID: p.ID, GameID: d.ID, Identifier: p.Identifier, Score: p.Score, Hand: p.Hand}
	}
	return g
}

// CachedStore serves GameByID from Redis when possible. Stored games never
// change, so entries are only written, never invalidated. Redis failures are
// logged and the call falls through to the wrapped store.
type CachedStore struct {
	next   game.Store
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(next game.Store, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(id int64) string {
	return cacheKeyPrefix + strconv.FormatInt(id, 10)
}

func (c *CachedStore) SaveGame(ctx context.Context, g cardgame.GameHistory) (cardgame.GameHistory, error) {
	saved, err := c.next.SaveGame(ctx, g)
	if err != nil {
		return saved, err
	}
	c.put(ctx, saved)
	return saved, nil
}

func (c *CachedStore) GameByID(ctx context.Context, id int64) (cardgame.GameHistory, error) {
	data, err := c.rdb.Get(ctx, cacheKey(id)).Bytes()
	switch {
	case err == nil:
		var d gameDoc
		if err := json.Unmarshal(data, &d); err == nil {
			return d.game(), nil
		}
		c.logger.Warn("discarding corrupt cache entry", "game_id", id)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("game cache read failed", "game_id", id, "error", err)
	}

	g, err := c.next.GameByID(ctx, id)
	if err != nil {
		return g, err
	}
	c.put(ctx, g)
	return g, nil
}

func (c *CachedStore) ListGames(ctx context.Context) ([]cardgame.GameHistory, error) {
	return c.next.ListGames(ctx)
}

func (c *CachedStore) put(ctx context.Context, g cardgame.GameHistory) {
	data, err := json.Marshal(toGameDoc(g))
	if err != nil {
		c.logger.Warn("encoding game for cache failed", "game_id", g.ID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(g.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("game cache write failed", "game_id", g.ID, "error", err)
	}
}
