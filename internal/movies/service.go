// Package movies provides cached access to movie search and detail lookups.
package movies

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/vmunix/moviecache/internal/omdb"
	"github.com/vmunix/moviecache/internal/ttlcache"
)

//go:generate mockgen -destination=mocks/mock_fetcher.go -package=mocks . Fetcher

// Fetcher performs the upstream lookups. *omdb.Client implements it.
type Fetcher interface {
	Search(ctx context.Context, query string, page int) (*omdb.SearchResponse, error)
	Movie(ctx context.Context, imdbID string) (*omdb.Movie, error)
}

// Service answers searches and detail lookups from per-kind TTL caches,
// falling back to the Fetcher on a miss.
type Service struct {
	fetcher Fetcher
	search  *lookup[*omdb.SearchResponse]
	detail  *lookup[*omdb.Movie]
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	log          *slog.Logger
	singleFlight bool
}

// WithLogger sets the logger for cache hit/miss debug output.
func WithLogger(log *slog.Logger) Option {
	return func(o *serviceOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithSingleFlight makes concurrent misses for the same key share a single
// upstream call. Without it each miss fetches on its own.
func WithSingleFlight() Option {
	return func(o *serviceOptions) {
		o.singleFlight = true
	}
}

// NewService creates a Service. The two caches are owned by the caller, which
// decides their TTLs and may sweep them.
func NewService(fetcher Fetcher, searchCache *ttlcache.Cache[*omdb.SearchResponse], detailCache *ttlcache.Cache[*omdb.Movie], opts ...Option) *Service {
	o := serviceOptions{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	var searchGroup, detailGroup *singleflight.Group
	if o.singleFlight {
		searchGroup, detailGroup = &singleflight.Group{}, &singleflight.Group{}
	}

	return &Service{
		fetcher: fetcher,
		search:  &lookup[*omdb.SearchResponse]{kind: "search", cache: searchCache, group: searchGroup, log: o.log},
		detail:  &lookup[*omdb.Movie]{kind: "detail", cache: detailCache, group: detailGroup, log: o.log},
	}
}

// Search returns one page of search results for query.
func (s *Service) Search(ctx context.Context, query string, page int) (*omdb.SearchResponse, error) {
	query = strings.TrimSpace(query)
	return s.search.get(ctx, SearchKey(query, page), func(ctx context.Context) (*omdb.SearchResponse, error) {
		return s.fetcher.Search(ctx, query, page)
	})
}

// Movie returns full details for an IMDb ID.
func (s *Service) Movie(ctx context.Context, imdbID string) (*omdb.Movie, error) {
	imdbID = strings.TrimSpace(imdbID)
	return s.detail.get(ctx, DetailKey(imdbID), func(ctx context.Context) (*omdb.Movie, error) {
		return s.fetcher.Movie(ctx, imdbID)
	})
}
