package omdb

import "errors"

// ErrUpstream matches every *UpstreamError via errors.Is.
var ErrUpstream = errors.New("omdb: upstream reported failure")

// Fallback messages when OMDb fails without saying why.
const (
	defaultSearchError = "Unknown error while searching OMDB"
	defaultDetailError = "Unknown error while fetching movie details"
)

// UpstreamError is returned when OMDb answers with "Response": "False",
// e.g. "Movie not found!" or "Invalid API key!".
type UpstreamError struct {
	Op      string // "search" or "movie"
	Message string // upstream text, or a default when OMDb gave none
}

// Error returns the upstream message unchanged so it can be shown to callers.
func (e *UpstreamError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrUpstream) true.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func newUpstreamError(op, message, fallback string) *UpstreamError {
	if message == "" {
		message = fallback
	}
	return &UpstreamError{Op: op, Message: message}
}
