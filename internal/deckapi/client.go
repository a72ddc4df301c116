// Package deckapi is a client for the remote card-dealing service that owns
// shuffled decks. Every failure is returned to the caller as-is; the client
// never retries.
package deckapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/playperu/cardgame/internal/cardgame"
	"github.com/playperu/cardgame/internal/tracing"
)

// DefaultBaseURL points at the public deckofcardsapi.com service.
const DefaultBaseURL = "https://deckofcardsapi.com/api/deck/"

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 1 << 20

type deckResponse struct {
	Success   *bool          `json:"success"`
	DeckID    string         `json:"deck_id"`
	Remaining int            `json:"remaining"`
	Cards     []cardResponse `json:"cards"`
	Error     string         `json:"error"`
}

type cardResponse struct {
	Code  string `json:"code"`
	Value string `json:"value"`
	Suit  string `json:"suit"`
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New returns a Client rooted at baseURL. A nil httpClient uses
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient, logger: logger}
}

// CreateDeck asks the provider for a new shuffled deck made of deckCount
// standard decks and returns its identifier.
func (c *Client) CreateDeck(ctx context.Context, deckCount int) (string, error) {
	if deckCount <= 0 {
		return "", fmt.Errorf("%w: deck count must be greater than zero, got %d", cardgame.ErrInvalidArgument, deckCount)
	}

	ctx, span := tracing.StartSpan(ctx, "deckapi.CreateDeck", attribute.Int("deck.count", deckCount))
	defer span.End()

	endpoint := c.baseURL + "new/shuffle/?" + url.Values{
		"deck_count": {strconv.Itoa(deckCount)},
	}.Encode()

	c.logger.Info("creating deck", "deck_count", deckCount)

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		c.logger.Error("create deck failed", "deck_count", deckCount, "error", err)
		return "", tracing.RecordError(span, fmt.Errorf("%w: creating deck: %w", cardgame.ErrDeckCreation, err))
	}
	if resp.DeckID == "" {
		err := fmt.Errorf("%w: creating deck: response has no deck_id", cardgame.ErrDeckCreation)
		c.logger.Error("create deck failed", "deck_count", deckCount, "error", err)
		return "", tracing.RecordError(span, err)
	}

	span.SetAttributes(attribute.String("deck.id", resp.DeckID))
	c.logger.Info("deck created", "deck_id", resp.DeckID, "remaining", resp.Remaining)
	return resp.DeckID, nil
}

// DealCards draws count cards from the deck identified by deckID, in the
// order the provider returns them.
func (c *Client) DealCards(ctx context.Context, deckID string, count int) ([]cardgame.Card, error) {
	if deckID == "" {
		return nil, fmt.Errorf("%w: deck id must not be empty", cardgame.ErrInvalidArgument)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: card count must be greater than zero, got %d", cardgame.ErrInvalidArgument, count)
	}

	ctx, span := tracing.StartSpan(ctx, "deckapi.DealCards",
		attribute.String("deck.id", deckID),
		attribute.Int("cards.count", count),
	)
	defer span.End()

	endpoint := c.baseURL + url.PathEscape(deckID) + "/draw/?" + url.Values{
		"count": {strconv.Itoa(count)},
	}.Encode()

	c.logger.Info("dealing cards", "deck_id", deckID, "count", count)

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		c.logger.Error("deal cards failed", "deck_id", deckID, "count", count, "error", err)
		return nil, tracing.RecordError(span, fmt.Errorf("%w: dealing cards: %w", cardgame.ErrDeckCreation, err))
	}
	if len(resp.Cards) == 0 {
		err := fmt.Errorf("%w: dealing cards: response has no cards", cardgame.ErrDeckCreation)
		c.logger.Error("deal cards failed", "deck_id", deckID, "count", count, "error", err)
		return nil, tracing.RecordError(span, err)
	}

	cards := make([]cardgame.Card, len(resp.Cards))
	for i, rc := range resp.Cards {
		cards[i] = cardgame.Card{Value: rc.Value, Suit: rc.Suit}
	}

	c.logger.Info("cards dealt", "deck_id", deckID, "count", len(cards), "remaining", resp.Remaining)
	return cards, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (deckResponse, error) {
	var out deckResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return out, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("calling provider: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return out, fmt.Errorf("reading response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return out, fmt.Errorf("provider returned status %d", res.StatusCode)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decoding response: %w", err)
	}
	if out.Success != nil && !*out.Success {
		msg := out.Error
		if msg == "" {
			msg = "request was not successful"
		}
		return out, fmt.Errorf("provider error: %s", msg)
	}
	return out, nil
}
