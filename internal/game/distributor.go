package game

import (
	"context"
	"fmt"

	"github.com/playperu/cardgame/internal/cardgame"
)

// Distributor deals one hand per player, scores it and renders it.
type Distributor struct {
	dealer     Dealer
	translator cardgame.Translator
}

func NewDistributor(dealer Dealer, translator cardgame.Translator) *Distributor {
	return &Distributor{dealer: dealer, translator: translator}
}

// DistributeCards draws cardsPerHand cards for each of numPlayers players,
// one provider call per player. The first failure aborts the whole deal.
func (d *Distributor) DistributeCards(ctx context.Context, numPlayers, cardsPerHand int, deckID string) ([]cardgame.Player, error) {
	var players []cardgame.Player

	for i := 1; i <= numPlayers; i++ {
		cards, err := d.dealer.DealCards(ctx, deckID, cardsPerHand)
		if err != nil {
			return nil, fmt.Errorf("dealing to player %d: %w", i, err)
		}

		score, err := cardgame.CalculateScore(cards)
		if err != nil {
			return nil, fmt.Errorf("scoring player %d: %w", i, err)
		}

		hand, err := d.translator.Hand(cards)
		if err != nil {
			return nil, fmt.Errorf("rendering hand of player %d: %w", i, err)
		}

		players = append(players, cardgame.Player{
			Identifier: d.translator.PlayerLabel(i),
			Score:      score,
			Hand:       hand,
		})
	}

	return players, nil
}
