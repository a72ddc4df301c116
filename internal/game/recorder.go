package game

import (
	"context"
	"fmt"

	"github.com/coder/quartz"

	"github.com/playperu/cardgame/internal/cardgame"
)

// Recorder turns a finished deal into a GameHistory and reads stored ones back.
type Recorder struct {
	store Store
	clock quartz.Clock
}

func NewRecorder(store Store, clock quartz.Clock) *Recorder {
	return &Recorder{store: store, clock: clock}
}

// SaveGameHistory stores the game together with its players and returns it
// with identifiers assigned.
func (r *Recorder) SaveGameHistory(ctx context.Context, numPlayers, cardsPerHand int, deckID, winner string, players []cardgame.Player) (cardgame.GameHistory, error) {
	g := cardgame.GameHistory{
		PlayerCount:  numPlayers,
		CardsPerHand: cardsPerHand,
		DeckID:       deckID,
		Winner:       winner,
		HighestScore: cardgame.HighestScore(players),
		PlayedAt:     r.clock.Now().UTC(),
		Players:      players,
	}

	saved, err := r.store.SaveGame(ctx, g)
	if err != nil {
		return cardgame.GameHistory{}, fmt.Errorf("saving game history: %w", err)
	}
	return saved, nil
}

func (r *Recorder) GameHistory(ctx context.Context, id int64) (cardgame.GameHistory, error) {
	return r.store.GameByID(ctx, id)
}

func (r *Recorder) GameHistories(ctx context.Context) ([]cardgame.GameHistory, error) {
	games, err := r.store.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []cardgame.GameHistory{}
	}
	return games, nil
}
