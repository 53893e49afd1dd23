// Package omdb provides a client for the OMDb movie metadata API.
package omdb

import "strings"

// SearchResponse is the payload of a title search (?s=).
type SearchResponse struct {
	Search       []SearchItem `json:"Search,omitempty"`
	TotalResults string       `json:"totalResults,omitempty"`
	Response     string       `json:"Response"`
	Error        string       `json:"Error,omitempty"`
}

// SearchItem is one hit in a search result page.
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDBID string `json:"imdbID"` // e.g., "tt0133093"
	Type   string `json:"Type"`   // movie, series, episode
	Poster string `json:"Poster"`
}

// Movie is the payload of a detail lookup (?i=).
type Movie struct {
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Rated      string   `json:"Rated,omitempty"`
	Released   string   `json:"Released,omitempty"`
	Runtime    string   `json:"Runtime,omitempty"` // "142 min"
	Genre      string   `json:"Genre,omitempty"`
	Director   string   `json:"Director,omitempty"`
	Writer     string   `json:"Writer,omitempty"`
	Actors     string   `json:"Actors,omitempty"`
	Plot       string   `json:"Plot,omitempty"`
	Language   string   `json:"Language,omitempty"`
	Country    string   `json:"Country,omitempty"`
	Awards     string   `json:"Awards,omitempty"`
	Poster     string   `json:"Poster,omitempty"`
	Ratings    []Rating `json:"Ratings,omitempty"`
	Metascore  string   `json:"Metascore,omitempty"`
	IMDBRating string   `json:"imdbRating,omitempty"`
	IMDBVotes  string   `json:"imdbVotes,omitempty"`
	IMDBID     string   `json:"imdbID,omitempty"`
	Type       string   `json:"Type,omitempty"`
	BoxOffice  string   `json:"BoxOffice,omitempty"`
	Response   string   `json:"Response"`
	Error      string   `json:"Error,omitempty"`
}

// Rating is a score from a single source, e.g. {"Rotten Tomatoes", "91%"}.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// failed reports whether OMDb flagged the response as unsuccessful.
func failed(response string) bool {
	return strings.EqualFold(response, "False")
}
