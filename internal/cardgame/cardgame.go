// Package cardgame defines the core domain types and the pure rules of the
// game: deck sizing, card scoring, hand rendering and winner resolution.
// It has zero external dependencies.
package cardgame

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"time"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDeckCreation    = errors.New("deck provider failure")
	ErrGameNotFound    = errors.New("game not found")
)

// Card is a single card as reported by the deck provider.
type Card struct {
	Value string
	Suit  string
}

// Player is one seat in a finished game. GameID refers back to the owning
// GameHistory and is zero until the game is stored.
type Player struct {
	ID         int64
	GameID     int64
	Identifier string
	Score      int
	Hand       string
}

// GameHistory is the stored record of a played game. It owns its Players,
// kept in distribution order.
type GameHistory struct {
	ID           int64
	PlayerCount  int
	CardsPerHand int
	DeckID       string
	Winner       string
	HighestScore int
	PlayedAt     time.Time
	Players      []Player
}

const cardsPerDeck = 52

// MaxCardsPerGame caps how many cards a single game may deal.
const MaxCardsPerGame = 100 * cardsPerDeck

// DecksNeeded returns how many standard decks are required to deal
// cardsPerHand cards to each of numPlayers players. The product is computed
// in 128 bits; a result that does not fit in an int saturates at math.MaxInt.
func DecksNeeded(numPlayers, cardsPerHand int) int {
	if numPlayers <= 0 || cardsPerHand <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(numPlayers), uint64(cardsPerHand))
	lo, carry := bits.Add64(lo, cardsPerDeck-1, 0)
	hi += carry
	if hi >= cardsPerDeck {
		return math.MaxInt
	}
	q, _ := bits.Div64(hi, lo, cardsPerDeck)
	if q > math.MaxInt {
		return math.MaxInt
	}
	return int(q)
}

// ValidateDeal reports whether numPlayers hands of cardsPerHand cards can be
// dealt in one game.
func ValidateDeal(numPlayers, cardsPerHand int) error {
	if numPlayers < 1 || cardsPerHand < 1 {
		return fmt.Errorf("%w: players and cards per hand must be at least 1 (got %d, %d)",
			ErrInvalidArgument, numPlayers, cardsPerHand)
	}
	if numPlayers > MaxCardsPerGame/cardsPerHand {
		return fmt.Errorf("%w: %d players with %d cards each exceeds the limit of %d cards per game",
			ErrInvalidArgument, numPlayers, cardsPerHand, MaxCardsPerGame)
	}
	return nil
}

// HighestScore returns the maximum score among players, or 0 if there are none.
func HighestScore(players []Player) int {
	if len(players) == 0 {
		return 0
	}
	best := players[0].Score
	for _, p := range players[1:] {
		best = max(best, p.Score)
	}
	return best
}
