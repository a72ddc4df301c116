package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/cardgame/internal/handler/health"
)

type gamePath struct {
	GameID int64 `path:"gameID" minimum:"1"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Card Game API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Deals hands from a shuffled deck, scores them and keeps the game history.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /game/play
	postPlay, _ := r.NewOperationContext(http.MethodPost, "/game/play")
	postPlay.SetSummary("Play a game")
	postPlay.SetDescription("Creates a shuffled deck, deals cardsPerHand cards to each player, picks the winner(s) and stores the game.")
	postPlay.AddReqStructure(PlayRequest{})
	postPlay.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postPlay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postPlay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(postPlay)

	// GET /game/history
	listHistory, _ := r.NewOperationContext(http.MethodGet, "/game/history")
	listHistory.SetSummary("List games")
	listHistory.SetDescription("Returns every stored game, oldest first. Responds 204 when there are none.")
	listHistory.AddRespStructure([]GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	listHistory.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(listHistory)

	// GET /game/history/{gameID}
	getHistory, _ := r.NewOperationContext(http.MethodGet, "/game/history/{gameID}")
	getHistory.SetSummary("Get game")
	getHistory.SetDescription("Returns one stored game with its players.")
	getHistory.AddReqStructure(gamePath{})
	getHistory.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHistory.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getHistory.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getHistory)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func handleSwaggerUI() http.HandlerFunc {
	return v5emb.New("Card Game API", "/openapi.json", "/docs").ServeHTTP
}
