package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/moviecache/internal/omdb"
)

func heatResults() omdb.SearchResponse {
	return omdb.SearchResponse{
		Search: []omdb.SearchItem{
			{Title: "Heat", Year: "1986", IMDBID: "tt0091183", Type: "movie"},
			{Title: "Heat", Year: "1995", IMDBID: "tt0113277", Type: "movie"},
			{Title: "The Heat", Year: "2013", IMDBID: "tt2404463", Type: "movie"},
		},
		TotalResults: "1234",
		Response:     "True",
	}
}

func TestSearchCmd_Human(t *testing.T) {
	srv := newMockServer(t).ExpectPath("/api/movies/search").RespondJSON(heatResults()).Build()

	out, err := runCLI(t, srv.URL, "search", "heat")
	require.NoError(t, err)
	assert.Contains(t, out, `1,234 results for "heat" (page 1 of 124)`)
	assert.Contains(t, out, "tt0113277")
	assert.Equal(t, 5, strings.Count(out, "\n"), "header, blank line and three rows")
}

func TestSearchCmd_JSON(t *testing.T) {
	srv := newMockServer(t).RespondJSON(heatResults()).Build()

	out, err := runCLI(t, srv.URL, "--json", "search", "heat")
	require.NoError(t, err)

	var got omdb.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, heatResults(), got)
}

func TestSearchCmd_PageFlag(t *testing.T) {
	srv := newMockServer(t).
		Handler(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "3", r.URL.Query().Get("page"))
			respondJSON(t, w, omdb.SearchResponse{Response: "True"})
		}).
		Build()

	out, err := runCLI(t, srv.URL, "search", "--page", "3", "heat")
	require.NoError(t, err)
	assert.Contains(t, out, "No movies found")
}

func TestSearchCmd_Best(t *testing.T) {
	srv := newMockServer(t).
		Handler(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/movies/search" {
				respondJSON(t, w, heatResults())
				return
			}
			assert.Equal(t, "/api/movies/tt0113277", r.URL.Path)
			respondJSON(t, w, omdb.Movie{Title: "Heat", Year: "1995", IMDBID: "tt0113277", Director: "Michael Mann", Response: "True"})
		}).
		Build()

	out, err := runCLI(t, srv.URL, "search", "--best", "Heat", "1995")
	require.NoError(t, err)
	assert.Contains(t, out, "Best match (high confidence")
	assert.Contains(t, out, "Director:   Michael Mann")
}

func TestSearchCmd_ServerError(t *testing.T) {
	srv := newMockServer(t).RespondError(http.StatusBadRequest, "INVALID_PAGE", "page must be an integer between 1 and 100").Build()

	_, err := runCLI(t, srv.URL, "search", "--page", "500", "heat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_PAGE")
}

func TestPrintSearchHuman_Empty(t *testing.T) {
	var buf bytes.Buffer
	printSearchHuman(&buf, "x", 1, &omdb.SearchResponse{})
	assert.Equal(t, "No movies found\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Heat", truncate("Heat", 10))
	assert.Equal(t, "Amél…", truncate("Amélie Poulain", 5))
}
