package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/vmunix/moviecache/internal/config"
	"github.com/vmunix/moviecache/internal/mcptools"
	"github.com/vmunix/moviecache/internal/movies"
	"github.com/vmunix/moviecache/internal/omdb"
	"github.com/vmunix/moviecache/internal/ttlcache"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file (default: discover)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if configPath == "" {
		found, err := config.Discover()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		configPath = found
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// stdout carries the MCP protocol.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	svc := buildService(cfg, logger)

	s := server.NewMCPServer(
		"moviecache",
		version,
		server.WithRecovery(),
		server.WithToolCapabilities(false),
	)
	mcptools.Register(s, svc)

	return server.ServeStdio(s)
}

// buildService wires the OMDb client and caches behind the lookup service.
func buildService(cfg *config.Config, logger *slog.Logger) *movies.Service {
	client := omdb.NewClient(cfg.OMDb.APIKey,
		omdb.WithBaseURL(cfg.OMDb.BaseURL),
		omdb.WithTimeout(cfg.OMDb.Timeout),
		omdb.WithLogger(logger),
	)

	opts := []movies.Option{movies.WithLogger(logger.With("component", "movies"))}
	if cfg.Cache.SingleFlight {
		opts = append(opts, movies.WithSingleFlight())
	}
	return movies.NewService(client,
		ttlcache.New[*omdb.SearchResponse](cfg.Cache.SearchTTL),
		ttlcache.New[*omdb.Movie](cfg.Cache.DetailTTL),
		opts...,
	)
}
