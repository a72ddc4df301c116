package cardgame

import (
	"fmt"
	"strconv"
	"strings"
)

var faceScores = map[string]int{
	"ACE":   1,
	"JACK":  11,
	"QUEEN": 12,
	"KING":  13,
}

// ScoreOf returns the rank value of a card. Face cards use their fixed score,
// every other value must be an integer.
func ScoreOf(c Card) (int, error) {
	if score, ok := faceScores[strings.ToUpper(c.Value)]; ok {
		return score, nil
	}
	n, err := strconv.Atoi(c.Value)
	if err != nil {
		return 0, fmt.Errorf("%w: card value %q", ErrInvalidArgument, c.Value)
	}
	return n, nil
}

// CalculateScore sums the score of every card in a hand.
func CalculateScore(cards []Card) (int, error) {
	total := 0
	for _, c := range cards {
		s, err := ScoreOf(c)
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}
