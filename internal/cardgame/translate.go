package cardgame

import (
	"fmt"
	"strings"
)

// Locale selects the language used for player labels and hand descriptions.
type Locale string

const (
	LocaleEnglish    Locale = "en"
	LocalePortuguese Locale = "pt"
)

type labels struct {
	player string
	of     string
	values map[string]string
	suits  map[string]string
}

var translations = map[Locale]labels{
	LocaleEnglish: {
		player: "Player %d",
		of:     " of ",
		values: map[string]string{
			"ACE":   "Ace",
			"KING":  "King",
			"QUEEN": "Queen",
			"JACK":  "Jack",
		},
		suits: map[string]string{
			"HEARTS":   "Hearts",
			"SPADES":   "Spades",
			"DIAMONDS": "Diamonds",
			"CLUBS":    "Clubs",
		},
	},
	LocalePortuguese: {
		player: "Jogador %d",
		of:     " de ",
		values: map[string]string{
			"ACE":   "Ás",
			"KING":  "Rei",
			"QUEEN": "Rainha",
			"JACK":  "Valete",
		},
		suits: map[string]string{
			"HEARTS":   "Copas",
			"SPADES":   "Espadas",
			"DIAMONDS": "Ouros",
			"CLUBS":    "Paus",
		},
	},
}

// Translator renders cards and player labels for one locale.
type Translator struct {
	l labels
}

// NewTranslator returns a Translator for locale. An empty locale means English.
func NewTranslator(locale Locale) (Translator, error) {
	if locale == "" {
		locale = LocaleEnglish
	}
	l, ok := translations[locale]
	if !ok {
		return Translator{}, fmt.Errorf("%w: unsupported locale %q", ErrInvalidArgument, locale)
	}
	return Translator{l: l}, nil
}

// PlayerLabel returns the display identifier of the 1-indexed seat n.
func (t Translator) PlayerLabel(n int) string {
	return fmt.Sprintf(t.l.player, n)
}

// Value translates face symbols. Anything else, numeric ranks included,
// passes through unchanged.
func (t Translator) Value(v string) string {
	if s, ok := t.l.values[strings.ToUpper(v)]; ok {
		return s
	}
	return v
}

// Suit translates a suit code. Unknown suits are rejected.
func (t Translator) Suit(s string) (string, error) {
	out, ok := t.l.suits[strings.ToUpper(s)]
	if !ok {
		return "", fmt.Errorf("%w: card suit %q", ErrInvalidArgument, s)
	}
	return out, nil
}

// Hand renders cards as "{value} of {suit}" joined by ", ". An empty hand
// renders as the empty string.
func (t Translator) Hand(cards []Card) (string, error) {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		suit, err := t.Suit(c.Suit)
		if err != nil {
			return "", err
		}
		parts = append(parts, t.Value(c.Value)+t.l.of+suit)
	}
	return strings.Join(parts, ", "), nil
}
