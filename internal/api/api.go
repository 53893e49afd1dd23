// Package api implements the movie lookup HTTP API.
package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/vmunix/moviecache/internal/omdb"
)

// Page bounds accepted by the search endpoint.
const (
	minPage = 1
	maxPage = 100
)

// Movies is the lookup surface the handlers need. *movies.Service implements it.
type Movies interface {
	Search(ctx context.Context, query string, page int) (*omdb.SearchResponse, error)
	Movie(ctx context.Context, imdbID string) (*omdb.Movie, error)
}

// Config holds API server configuration.
type Config struct {
	AllowedOrigins []string
}

// Server is the movie API server.
type Server struct {
	movies Movies
	cfg    Config
	log    *slog.Logger
}

// New creates a new API server.
func New(movies Movies, cfg Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{movies: movies, cfg: cfg, log: log}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/movies/search", s.search)
	mux.HandleFunc("GET /api/movies/{id}", s.getMovie)
	mux.HandleFunc("GET /healthz", s.healthz)
}

// Handler returns the routes wrapped in request ID, logging and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return requestID(logRequests(cors(mux, s.cfg.AllowedOrigins), s.log))
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", "query parameter q is required")
		return
	}

	page := minPage
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < minPage || p > maxPage {
			writeError(w, http.StatusBadRequest, "INVALID_PAGE", "page must be an integer between 1 and 100")
			return
		}
		page = p
	}

	resp, err := s.movies.Search(r.Context(), q, page)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	writeTagged(w, r, resp)
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "movie id is required")
		return
	}

	movie, err := s.movies.Movie(r.Context(), id)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	writeTagged(w, r, movie)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// upstreamError maps a lookup failure onto a response. OMDb's own message is
// passed through unchanged.
func (s *Server) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var upErr *omdb.UpstreamError
	switch {
	case errors.As(err, &upErr):
		writeError(w, http.StatusNotFound, "NOT_FOUND", upErr.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.log.Warn("upstream timeout", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", "upstream request timed out")
	default:
		s.log.Error("upstream failure", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}
}
