package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/playperu/cardgame/internal/cardgame"
)

// SQLiteStore implements game.Store on the game_history and players tables.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// SaveGame inserts the game and its players in one transaction.
func (s *SQLiteStore) SaveGame(ctx context.Context, g cardgame.GameHistory) (cardgame.GameHistory, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return cardgame.GameHistory{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO game_history (player_count, cards_per_hand, deck_id, winner, highest_score, played_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`, g.PlayerCount, g.CardsPerHand, g.DeckID, g.Winner, g.HighestScore, g.PlayedAt.UTC().Format(time.RFC3339Nano),
	).Scan(&g.ID)
	if err != nil {
		return cardgame.GameHistory{}, fmt.Errorf("inserting game: %w", err)
	}

	players := make([]cardgame.Player, len(g.Players))
	for i, p := range g.Players {
		p.GameID = g.ID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO players (game_history_id, position, identifier, score, hand)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id
		`, g.ID, i+1, p.Identifier, p.Score, p.Hand).Scan(&p.ID)
		if err != nil {
			return cardgame.GameHistory{}, fmt.Errorf("inserting player %q: %w", p.Identifier, err)
		}
		players[i] = p
	}

	if err := tx.Commit(); err != nil {
		return cardgame.GameHistory{}, fmt.Errorf("committing game: %w", err)
	}

	g.Players = players
	return g, nil
}

func (s *SQLiteStore) GameByID(ctx context.Context, id int64) (cardgame.GameHistory, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, player_count, cards_per_hand, deck_id, winner, highest_score, played_at
		FROM game_history
		WHERE id = ?
	`, id)

	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return cardgame.GameHistory{}, fmt.Errorf("%w: id %d", cardgame.ErrGameNotFound, id)
	}
	if err != nil {
		return cardgame.GameHistory{}, err
	}

	byGame, err := s.playersFor(ctx, `WHERE game_history_id = ?`, id)
	if err != nil {
		return cardgame.GameHistory{}, err
	}
	g.Players = byGame[g.ID]
	return g, nil
}

// ListGames returns every stored game, oldest first, with its players.
func (s *SQLiteStore) ListGames(ctx context.Context) ([]cardgame.GameHistory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_count, cards_per_hand, deck_id, winner, highest_score, played_at
		FROM game_history
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []cardgame.GameHistory{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	byGame, err := s.playersFor(ctx, ``)
	if err != nil {
		return nil, err
	}
	for i := range games {
		games[i].Players = byGame[games[i].ID]
	}
	return games, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (cardgame.GameHistory, error) {
	var g cardgame.GameHistory
	var playedAt string
	if err := row.Scan(&g.ID, &g.PlayerCount, &g.CardsPerHand, &g.DeckID, &g.Winner, &g.HighestScore, &playedAt); err != nil {
		return g, err
	}
	t, err := time.Parse(time.RFC3339Nano, playedAt)
	if err != nil {
		return g, fmt.Errorf("parsing played_at of game %d: %w", g.ID, err)
	}
	g.PlayedAt = t
	return g, nil
}

// playersFor loads players matching where, grouped by game and kept in
// distribution order.
func (s *SQLiteStore) playersFor(ctx context.Context, where string, args ...any) (map[int64][]cardgame.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, game_history_id, identifier, score, hand
		FROM players
		`+where+`
		ORDER BY game_history_id, position
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]cardgame.Player)
	for rows.Next() {
		var p cardgame.Player
		if err := rows.Scan(&p.ID, &p.GameID, &p.Identifier, &p.Score, &p.Hand); err != nil {
			return nil, err
		}
		out[p.GameID] = append(out[p.GameID], p)
	}
	return out, rows.Err()
}
