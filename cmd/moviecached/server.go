package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/vmunix/moviecache/internal/api"
	"github.com/vmunix/moviecache/internal/config"
	"github.com/vmunix/moviecache/internal/movies"
	"github.com/vmunix/moviecache/internal/omdb"
	"github.com/vmunix/moviecache/internal/server"
	"github.com/vmunix/moviecache/internal/ttlcache"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return nil, "", err
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// buildRunner wires the cache, lookup service and HTTP API from cfg.
func buildRunner(cfg *config.Config, logger *slog.Logger) *server.Runner {
	client := omdb.NewClient(cfg.OMDb.APIKey,
		omdb.WithBaseURL(cfg.OMDb.BaseURL),
		omdb.WithTimeout(cfg.OMDb.Timeout),
		omdb.WithLogger(logger),
	)

	searchCache := ttlcache.New[*omdb.SearchResponse](cfg.Cache.SearchTTL)
	detailCache := ttlcache.New[*omdb.Movie](cfg.Cache.DetailTTL)

	opts := []movies.Option{movies.WithLogger(logger.With("component", "movies"))}
	if cfg.Cache.SingleFlight {
		opts = append(opts, movies.WithSingleFlight())
	}
	svc := movies.NewService(client, searchCache, detailCache, opts...)

	apiServer := api.New(svc, api.Config{AllowedOrigins: cfg.CORS.AllowedOrigins}, logger.With("component", "api"))

	sweeper := ttlcache.NewSweeper(cfg.Cache.SweepInterval, logger.With("component", "sweeper"), map[string]ttlcache.Expirer{
		"search": searchCache,
		"detail": detailCache,
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	return server.NewRunner(apiServer.Handler(), server.Config{Addr: addr}, logger, sweeper)
}

func runServer(configPath string) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("moviecached starting",
		"version", version,
		"config", path,
		"search_ttl", cfg.Cache.SearchTTL,
		"detail_ttl", cfg.Cache.DetailTTL,
		"single_flight", cfg.Cache.SingleFlight,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := buildRunner(cfg, logger).Run(ctx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
