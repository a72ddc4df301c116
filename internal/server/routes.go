package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/cardgame/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, games Games, checks map[string]health.Checker) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", handleSwaggerUI())
	r.Mount("/healthz", health.NewHandler(logger, checks).Routes())

	r.Route("/game", func(r chi.Router) {
		r.Post("/play", handlePlay(games))
		r.Get("/history", handleListHistory(games))
		r.Get("/history/{gameID}", handleGetHistory(games))
	})
}
