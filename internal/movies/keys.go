package movies

import (
	"strconv"
	"strings"
)

// Cache key prefixes
const (
	keyPrefixSearch = "search:"
	keyPrefixDetail = "detail:"
)

// normalize trims surrounding whitespace and lower-cases s.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SearchKey returns the cache key for a search page.
// Queries differing only in case or surrounding whitespace share a key.
func SearchKey(query string, page int) string {
	return keyPrefixSearch + normalize(query) + ":" + strconv.Itoa(page)
}

// DetailKey returns the cache key for a detail lookup.
func DetailKey(imdbID string) string {
	return keyPrefixDetail + normalize(imdbID)
}
