package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/playperu/cardgame/internal/config"
	"github.com/playperu/cardgame/internal/database"
)

type CLI struct {
	Migrate MigrateCmd `cmd:"" help:"Apply pending database migrations"`
	Play    PlayCmd    `cmd:"" help:"Play one game against the deck provider and store it"`
	History HistoryCmd `cmd:"" help:"Show one stored game, or all of them"`
}

// app carries what every command needs. It is bound into kong so that
// command Run methods receive it.
type app struct {
	ctx    context.Context
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	out    io.Writer
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("cardgame"),
		kong.Description("Operator tool for the card game service. Reads the same environment as the server."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	if err := run(ctx, kctx, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, kctx *kong.Context, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(log.NewWithOptions(stderr, log.Options{
		Level:           log.Level(cfg.LogLevel),
		ReportTimestamp: true,
	}))

	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	return kctx.Run(&app{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		db:     db,
		out:    stdout,
	})
}
