// Package mcptools exposes movie lookups as MCP tools.
package mcptools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vmunix/moviecache/internal/omdb"
)

// Tool names.
const (
	ToolSearch = "search-movies"
	ToolMovie  = "get-movie"
)

// Movies is the lookup surface the tools need. *movies.Service implements it.
type Movies interface {
	Search(ctx context.Context, query string, page int) (*omdb.SearchResponse, error)
	Movie(ctx context.Context, imdbID string) (*omdb.Movie, error)
}

// Register adds both movie tools to s.
func Register(s *server.MCPServer, m Movies) {
	s.AddTool(SearchTool(), SearchHandler(m))
	s.AddTool(MovieTool(), MovieHandler(m))
}

// SearchTool describes the search-movies tool.
func SearchTool() mcp.Tool {
	return mcp.NewTool(ToolSearch,
		mcp.WithDescription(multiline(
			"Searches OMDb for movies, series and episodes by title",
			"\nUsage notes:",
			"- Returns up to 10 results per page with title, year, type and IMDb ID",
			"- Use get-movie with an IMDb ID from the results for full details",
			"- Results are cached briefly, so repeating a search is cheap",
		)),
		mcp.WithString("query", mcp.Required(), mcp.Description("Title or part of a title to search for")),
		mcp.WithNumber("page", mcp.Description("Result page, starting at 1"), mcp.Min(1), mcp.Max(100), mcp.DefaultNumber(1)),
	)
}

// MovieTool describes the get-movie tool.
func MovieTool() mcp.Tool {
	return mcp.NewTool(ToolMovie,
		mcp.WithDescription("Returns full OMDb details (plot, cast, ratings) for an IMDb ID such as tt0111161"),
		mcp.WithString("imdb_id", mcp.Required(), mcp.Description("IMDb ID, e.g. tt0111161")),
	)
}

// multiline joins lines with newlines for tool descriptions.
func multiline(lines ...string) string { return strings.Join(lines, "\n") }
