package server

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/playperu/cardgame/internal/cardgame"
	"github.com/playperu/cardgame/internal/database"
	"github.com/playperu/cardgame/internal/migrations"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewSQLiteStore(db)
}

func sampleGame(playedAt time.Time) cardgame.GameHistory {
	return cardgame.GameHistory{
		PlayerCount:  3,
		CardsPerHand: 2,
		DeckID:       "kxozasf3edqu",
		Winner:       "Player 1, Player 3",
		HighestScore: 21,
		PlayedAt:     playedAt,
		Players: []cardgame.Player{
			{Identifier: "Player 1", Score: 21, Hand: "King of Hearts, 8 of Clubs"},
			{Identifier: "Player 2", Score: 5, Hand: "Ace of Spades, 4 of Clubs"},
			{Identifier: "Player 3", Score: 21, Hand: "Queen of Diamonds, 9 of Hearts"},
		},
	}
}

func TestSaveAndGetGame(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	playedAt := time.Date(2026, 3, 14, 15, 9, 26, 535000000, time.UTC)

	saved, err := store.SaveGame(ctx, sampleGame(playedAt))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("expected an assigned game id")
	}
	for i, p := range saved.Players {
		if p.ID == 0 {
			t.Errorf("player %d: expected an assigned id", i)
		}
		if p.GameID != saved.ID {
			t.Errorf("player %d: game id = %d, want %d", i, p.GameID, saved.ID)
		}
	}

	got, err := store.GameByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PlayerCount != 3 || got.CardsPerHand != 2 {
		t.Errorf("counts = (%d, %d), want (3, 2)", got.PlayerCount, got.CardsPerHand)
	}
	if got.DeckID != "kxozasf3edqu" {
		t.Errorf("deck id = %q", got.DeckID)
	}
	if got.Winner != "Player 1, Player 3" {
		t.Errorf("winner = %q", got.Winner)
	}
	if got.HighestScore != 21 {
		t.Errorf("highest score = %d, want 21", got.HighestScore)
	}
	if !got.PlayedAt.Equal(playedAt) {
		t.Errorf("played at = %v, want %v", got.PlayedAt, playedAt)
	}
	if len(got.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(got.Players))
	}
	for i, want := range []string{"Player 1", "Player 2", "Player 3"} {
		if got.Players[i].Identifier != want {
			t.Errorf("player %d = %q, want %q", i, got.Players[i].Identifier, want)
		}
		if got.Players[i] != saved.Players[i] {
			t.Errorf("player %d = %+v, want %+v", i, got.Players[i], saved.Players[i])
		}
	}
}

func TestGetGameNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GameByID(context.Background(), 404)
	if !errors.Is(err, cardgame.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestListGames(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	games, err := store.ListGames(ctx)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if games == nil || len(games) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", games)
	}

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var ids []int64
	for i := range 3 {
		g := sampleGame(base.Add(time.Duration(i) * time.Minute))
		g.DeckID = "deck-" + string(rune('a'+i))
		saved, err := store.SaveGame(ctx, g)
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		ids = append(ids, saved.ID)
	}

	games, err = store.ListGames(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}
	for i, g := range games {
		if g.ID != ids[i] {
			t.Errorf("game %d id = %d, want %d", i, g.ID, ids[i])
		}
		if len(g.Players) != 3 {
			t.Errorf("game %d has %d players, want 3", i, len(g.Players))
		}
		for _, p := range g.Players {
			if p.GameID != g.ID {
				t.Errorf("game %d holds player of game %d", g.ID, p.GameID)
			}
		}
	}
}

func TestSaveGameIsAtomic(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// An invalid player count trips the CHECK constraint on the game row.
	bad := sampleGame(time.Now())
	bad.PlayerCount = 0
	if _, err := store.SaveGame(ctx, bad); err == nil {
		t.Fatal("expected constraint error")
	}

	// Cancelling the context aborts the transaction before commit.
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := store.SaveGame(cctx, sampleGame(time.Now())); err == nil {
		t.Fatal("expected error for cancelled context")
	}

	assertEmpty(t, store)
}

func TestSaveGameRollsBackOnPlayerFailure(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// The game row and the first player are written before this fires.
	_, err := store.db.ExecContext(ctx, `
		CREATE TRIGGER reject_second_player BEFORE INSERT ON players
		WHEN NEW.position = 2
		BEGIN
			SELECT RAISE(ABORT, 'second player rejected');
		END
	`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	_, err = store.SaveGame(ctx, sampleGame(time.Now()))
	if err == nil {
		t.Fatal("expected player insert to fail")
	}
	if !strings.Contains(err.Error(), "Player 2") {
		t.Errorf("error %q does not name the failing player", err)
	}

	assertEmpty(t, store)
}

func assertEmpty(t *testing.T, store *SQLiteStore) {
	t.Helper()
	var games, players int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM game_history`).Scan(&games); err != nil {
		t.Fatalf("count games: %v", err)
	}
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM players`).Scan(&players); err != nil {
		t.Fatalf("count players: %v", err)
	}
	if games != 0 || players != 0 {
		t.Fatalf("expected nothing stored, got %d games and %d players", games, players)
	}
}
