package cardgame

import "strings"

// DetermineWinner returns the identifiers of every player holding the highest
// score, joined by ", " in distribution order. Identifiers are not re-sorted.
func DetermineWinner(players []Player) string {
	if len(players) == 0 {
		return ""
	}
	best := HighestScore(players)

	var winners []string
	for _, p := range players {
		if p.Score == best {
			winners = append(winners, p.Identifier)
		}
	}
	return strings.Join(winners, ", ")
}
