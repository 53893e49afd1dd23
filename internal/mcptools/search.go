package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vmunix/moviecache/internal/omdb"
)

// SearchHandler returns the MCP tool handler for the "search-movies" tool.
func SearchHandler(m Movies) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		q = strings.TrimSpace(q)
		if q == "" {
			return mcp.NewToolResultError("query must not be blank"), nil
		}
		page := req.GetInt("page", 1)
		if page < 1 || page > 100 {
			return mcp.NewToolResultError("page must be between 1 and 100"), nil
		}

		resp, err := m.Search(ctx, q, page)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatSearch(resp, page)), nil
	}
}

// formatSearch renders a numbered list, one hit per entry.
func formatSearch(resp *omdb.SearchResponse, page int) string {
	if len(resp.Search) == 0 {
		return "No results."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Page %d of results (%s total)\n\n", page, resp.TotalResults)
	for i, item := range resp.Search {
		fmt.Fprintf(&sb, "%d. %s (%s) [%s]\n   imdb_id: %s", i+1, item.Title, item.Year, item.Type, item.IMDBID)
		if i < len(resp.Search)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
