package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vmunix/moviecache/internal/omdb"
)

// MovieHandler returns the MCP tool handler for the "get-movie" tool.
func MovieHandler(m Movies) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("imdb_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id = strings.TrimSpace(id)
		if id == "" {
			return mcp.NewToolResultError("imdb_id must not be blank"), nil
		}

		movie, err := m.Movie(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatMovie(movie)), nil
	}
}

func formatMovie(m *omdb.Movie) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", m.Title, m.Year)

	field := func(label, value string) {
		if value != "" && value != "N/A" {
			fmt.Fprintf(&sb, "%s: %s\n", label, value)
		}
	}
	field("IMDb ID", m.IMDBID)
	field("Rated", m.Rated)
	field("Runtime", m.Runtime)
	field("Genre", m.Genre)
	field("Director", m.Director)
	field("Actors", m.Actors)
	field("IMDb rating", m.IMDBRating)
	for _, r := range m.Ratings {
		field(r.Source, r.Value)
	}
	if m.Plot != "" && m.Plot != "N/A" {
		sb.WriteString("\n")
		sb.WriteString(m.Plot)
	}
	return strings.TrimRight(sb.String(), "\n")
}
