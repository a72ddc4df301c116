package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/cardgame/internal/cardgame"
)

// Games is the game service as seen by the HTTP layer.
type Games interface {
	PlayGame(ctx context.Context, numPlayers, cardsPerHand int) (cardgame.GameHistory, error)
	GameHistory(ctx context.Context, id int64) (cardgame.GameHistory, error)
	GameHistories(ctx context.Context) ([]cardgame.GameHistory, error)
}

type PlayRequest struct {
	NumPlayers   int `json:"numPlayers" minimum:"1" maximum:"5200" required:"true" description:"numPlayers * cardsPerHand may not exceed 5200"`
	CardsPerHand int `json:"cardsPerHand" minimum:"1" maximum:"5200" required:"true"`
}

type PlayerResponse struct {
	ID         int64  `json:"id"`
	Identifier string `json:"identifier"`
	Score      int    `json:"score"`
	Hand       string `json:"hand"`
}

type GameResponse struct {
	ID              int64            `json:"id"`
	NumberOfPlayers int              `json:"numberOfPlayers"`
	CardsPerPlayer  int              `json:"cardsPerPlayer"`
	DeckID          string           `json:"deckId"`
	Winner          string           `json:"winner"`
	HighestScore    int              `json:"highestScore"`
	GameTimestamp   time.Time        `json:"gameTimestamp"`
	Players         []PlayerResponse `json:"players"`
}

func newGameResponse(g cardgame.GameHistory) GameResponse {
	resp := GameResponse{
		ID:              g.ID,
		NumberOfPlayers: g.PlayerCount,
		CardsPerPlayer:  g.CardsPerHand,
		DeckID:          g.DeckID,
		Winner:          g.Winner,
		HighestScore:    g.HighestScore,
		GameTimestamp:   g.PlayedAt,
		Players:         make([]PlayerResponse, len(g.Players)),
	}
	for i, p := range g.Players {
		resp.Players[i] = PlayerResponse{
			ID:         p.ID,
			Identifier: p.Identifier,
			Score:      p.Score,
			Hand:       p.Hand,
		}
	}
	return resp
}

func handlePlay(games Games) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlayRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		g, err := games.PlayGame(r.Context(), req.NumPlayers, req.CardsPerHand)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, newGameResponse(g))
	}
}

func handleGetHistory(games Games) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
		if err != nil || id < 1 {
			writeError(w, http.StatusBadRequest, "invalid game id")
			return
		}

		g, err := games.GameHistory(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newGameResponse(g))
	}
}

func handleListHistory(games Games) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := games.GameHistories(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if len(list) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		resp := make([]GameResponse, len(list))
		for i, g := range list {
			resp[i] = newGameResponse(g)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
