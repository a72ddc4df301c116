package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/cardgame/internal/cardgame"
	"github.com/playperu/cardgame/internal/config"
	"github.com/playperu/cardgame/internal/database"
	"github.com/playperu/cardgame/internal/deckapi"
	"github.com/playperu/cardgame/internal/game"
	"github.com/playperu/cardgame/internal/handler/health"
	"github.com/playperu/cardgame/internal/migrations"
	"github.com/playperu/cardgame/internal/server"
	"github.com/playperu/cardgame/internal/tracing"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Tracing ---
	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName: "cardgame",
		Environment: cfg.AppEnv,
		Exporter:    cfg.TracesExporter,
		SampleRatio: cfg.TracesSampleRatio,
		PrettyPrint: cfg.AppEnv == "development",
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer shutdownTracer(context.Background())

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	applied, err := migrations.Run(ctx, db)
	if err != nil {
		return err
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath, "migrations_applied", len(applied))

	checks := map[string]health.Checker{
		"sqlite": dbChecker{db},
	}

	var store game.Store = server.NewSQLiteStore(db)

	// --- Redis (optional) ---
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis", "cache_ttl", cfg.RedisCacheTTL)

		store = server.NewCachedStore(store, rdb, cfg.RedisCacheTTL, logger)
		checks["redis"] = redisChecker{rdb}
	}

	// --- Game service ---
	translator, err := cardgame.NewTranslator(cfg.HandLocale)
	if err != nil {
		return fmt.Errorf("configuring hand locale: %w", err)
	}

	provider := deckapi.New(cfg.DeckAPIBaseURL, &http.Client{Timeout: cfg.DeckAPITimeout}, logger)
	games := game.NewService(
		provider,
		game.NewDistributor(provider, translator),
		game.NewRecorder(store, quartz.NewReal()),
		logger,
	)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, games, checks)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr, "deck_api", cfg.DeckAPIBaseURL, "locale", cfg.HandLocale)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// dbChecker adapts *sql.DB to health.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }

// redisChecker adapts *redis.Client to health.Checker.
type redisChecker struct{ client *redis.Client }

func (r redisChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }
