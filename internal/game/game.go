// Package game sequences a single play: size the deck, ask the provider for
// it, deal every hand, pick the winner and store the result.
package game

import (
	"context"

	"github.com/playperu/cardgame/internal/cardgame"
)

// DeckProvider is the remote service that shuffles decks and deals cards.
type DeckProvider interface {
	Dealer
	CreateDeck(ctx context.Context, deckCount int) (string, error)
}

// Dealer draws cards from an existing deck.
type Dealer interface {
	DealCards(ctx context.Context, deckID string, count int) ([]cardgame.Card, error)
}

// Store persists finished games. SaveGame must write the game and all of its
// players atomically and return the game with identifiers assigned.
type Store interface {
	SaveGame(ctx context.Context, g cardgame.GameHistory) (cardgame.GameHistory, error)
	GameByID(ctx context.Context, id int64) (cardgame.GameHistory, error)
	ListGames(ctx context.Context) ([]cardgame.GameHistory, error)
}
