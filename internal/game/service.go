package game

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/playperu/cardgame/internal/cardgame"
	"github.com/playperu/cardgame/internal/tracing"
)

type Service struct {
	provider    DeckProvider
	distributor *Distributor
	recorder    *Recorder
	logger      *slog.Logger
}

func NewService(provider DeckProvider, distributor *Distributor, recorder *Recorder, logger *slog.Logger) *Service {
	return &Service{
		provider:    provider,
		distributor: distributor,
		recorder:    recorder,
		logger:      logger,
	}
}

// PlayGame deals cardsPerHand cards to numPlayers players from a freshly
// shuffled deck and stores the outcome. Nothing is stored unless every step
// succeeds.
func (s *Service) PlayGame(ctx context.Context, numPlayers, cardsPerHand int) (cardgame.GameHistory, error) {
	if err := cardgame.ValidateDeal(numPlayers, cardsPerHand); err != nil {
		return cardgame.GameHistory{}, err
	}

	ctx, span := tracing.StartSpan(ctx, "game.PlayGame",
		attribute.Int("game.players", numPlayers),
		attribute.Int("game.cards_per_hand", cardsPerHand),
	)
	defer span.End()

	decks := cardgame.DecksNeeded(numPlayers, cardsPerHand)

	deckID, err := s.provider.CreateDeck(ctx, decks)
	if err != nil {
		return cardgame.GameHistory{}, tracing.RecordError(span, err)
	}

	players, err := s.distributor.DistributeCards(ctx, numPlayers, cardsPerHand, deckID)
	if err != nil {
		return cardgame.GameHistory{}, tracing.RecordError(span, err)
	}

	winner := cardgame.DetermineWinner(players)

	g, err := s.recorder.SaveGameHistory(ctx, numPlayers, cardsPerHand, deckID, winner, players)
	if err != nil {
		return cardgame.GameHistory{}, tracing.RecordError(span, err)
	}

	span.SetAttributes(attribute.Int64("game.id", g.ID))
	s.logger.Info("game played",
		"game_id", g.ID,
		"players", numPlayers,
		"cards_per_hand", cardsPerHand,
		"decks", decks,
		"deck_id", deckID,
		"winner", winner,
		"highest_score", g.HighestScore,
	)
	return g, nil
}

func (s *Service) GameHistory(ctx context.Context, id int64) (cardgame.GameHistory, error) {
	return s.recorder.GameHistory(ctx, id)
}

func (s *Service) GameHistories(ctx context.Context) ([]cardgame.GameHistory, error) {
	return s.recorder.GameHistories(ctx)
}
