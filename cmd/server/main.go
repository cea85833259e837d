package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/playperu/geoduel/internal/config"
	"github.com/playperu/geoduel/internal/database"
	"github.com/playperu/geoduel/internal/docstore"
	"github.com/playperu/geoduel/internal/geo"
	"github.com/playperu/geoduel/internal/handler/health"
	"github.com/playperu/geoduel/internal/lobby"
	"github.com/playperu/geoduel/internal/migrations"
	"github.com/playperu/geoduel/internal/profile"
	"github.com/playperu/geoduel/internal/server"
)

const feedPrefix = "geoduel"

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

	checks := map[string]health.Checker{}
	opts := []docstore.Option{
		docstore.WithLogger(logger),
		docstore.WithMaxAttempts(cfg.TxMaxAttempts),
	}

	// --- Redis (optional change feed) ---
	var feed *docstore.RedisFeed
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")

		feed = docstore.NewRedisFeed(rdb, feedPrefix, logger)
		opts = append(opts, docstore.WithFeed(feed))
		checks["redis"] = health.CheckFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	// --- Document store ---
	store, closeStore, err := openStore(ctx, cfg, logger, checks, opts)
	if err != nil {
		return err
	}
	defer closeStore()

	atlas := geo.Default()
	lobbies := lobby.NewService(store, atlas, logger)
	profiles := profile.NewService(store, logger)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Lobbies:           lobbies,
		Profiles:          profiles,
		Atlas:             atlas,
		Health:            health.NewHandler(logger, checks).Routes(),
		PublicURL:         cfg.PublicURL,
		AdminPasswordHash: cfg.AdminPasswordHash,
		RateLimit:         rate.Limit(cfg.RateLimitRPS),
		RateBurst:         cfg.RateLimitBurst,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	if feed != nil {
		g.Go(func() error {
			logger.Info("relaying lobby updates through redis")
			return feed.Run(gctx, store.Deliver)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// openStore connects the configured document store backend and
// registers its health check.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, checks map[string]health.Checker, opts []docstore.Option) (*docstore.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pinging postgres: %w", err)
		}
		store, err := docstore.NewPostgres(ctx, pool, opts...)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		checks["postgres"] = health.CheckFunc(pool.Ping)
		logger.Info("connected to postgres")
		return store, pool.Close, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, lobbies are lost on restart")
		return docstore.NewMemory(opts...), func() {}, nil

	default:
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		if err := migrations.Run(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		checks["sqlite"] = health.CheckFunc(db.PingContext)
		logger.Info("connected to sqlite", "path", cfg.DBPath)
		return docstore.NewSQLite(db, opts...), func() { db.Close() }, nil
	}
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
