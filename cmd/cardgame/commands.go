package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"

	"github.com/playperu/cardgame/internal/cardgame"
	"github.com/playperu/cardgame/internal/deckapi"
	"github.com/playperu/cardgame/internal/game"
	"github.com/playperu/cardgame/internal/migrations"
	"github.com/playperu/cardgame/internal/server"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	winnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(a *app) error {
	applied, err := migrations.Run(a.ctx, a.db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(a.out, "database is up to date")
		return nil
	}
	fmt.Fprintf(a.out, "applied %d migration(s): %v\n", len(applied), applied)
	return nil
}

type PlayCmd struct {
	Players int `short:"p" default:"2" help:"Number of players"`
	Cards   int `short:"c" default:"5" help:"Cards dealt to each player"`
}

func (c *PlayCmd) Run(a *app) error {
	if _, err := migrations.Run(a.ctx, a.db); err != nil {
		return err
	}

	svc, err := newService(a)
	if err != nil {
		return err
	}

	g, err := svc.PlayGame(a.ctx, c.Players, c.Cards)
	if err != nil {
		return err
	}
	printGame(a.out, g)
	return nil
}

type HistoryCmd struct {
	ID int64 `arg:"" optional:"" help:"Game id; omit to list every game"`
}

func (c *HistoryCmd) Run(a *app) error {
	if _, err := migrations.Run(a.ctx, a.db); err != nil {
		return err
	}

	svc, err := newService(a)
	if err != nil {
		return err
	}

	if c.ID != 0 {
		g, err := svc.GameHistory(a.ctx, c.ID)
		if err != nil {
			return err
		}
		printGame(a.out, g)
		return nil
	}

	games, err := svc.GameHistories(a.ctx)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(a.out, "no games played yet")
		return nil
	}
	for i, g := range games {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		printGame(a.out, g)
	}
	return nil
}

func newService(a *app) (*game.Service, error) {
	translator, err := cardgame.NewTranslator(a.cfg.HandLocale)
	if err != nil {
		return nil, fmt.Errorf("configuring hand locale: %w", err)
	}

	provider := deckapi.New(a.cfg.DeckAPIBaseURL, &http.Client{Timeout: a.cfg.DeckAPITimeout}, a.logger)
	return game.NewService(
		provider,
		game.NewDistributor(provider, translator),
		game.NewRecorder(server.NewSQLiteStore(a.db), quartz.NewReal()),
		a.logger,
	), nil
}

func printGame(w io.Writer, g cardgame.GameHistory) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Game #%d", g.ID)))
	fmt.Fprintf(w, "  played:  %s\n", g.PlayedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "  deck:    %s (%d players x %d cards)\n", g.DeckID, g.PlayerCount, g.CardsPerHand)
	fmt.Fprintf(w, "  winner:  %s with %d\n", winnerStyle.Render(g.Winner), g.HighestScore)
	for _, p := range g.Players {
		fmt.Fprintf(w, "  %-12s %3d  %s\n", p.Identifier, p.Score, p.Hand)
	}
}
