package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for the distinct TMDB failure kinds. Wrap-aware callers
// can match them with errors.Is regardless of how they were produced.
var (
	// ErrUnauthorized means TMDB rejected our API key.
	ErrUnauthorized = errors.New("tmdb rejected the API key")
	// ErrNotFound covers both a missing TMDB resource and a discovery or
	// keyword resolution that produced nothing usable.
	ErrNotFound = errors.New("tmdb resource not found")
	// ErrRateLimited means TMDB throttled the request.
	ErrRateLimited = errors.New("tmdb rate limit exceeded")
)

// Error is the generic TMDB failure: a transport error, a timeout, or an
// HTTP status outside the taxonomy above. Status is 0 when the request
// never produced a response.
type Error struct {
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Status == 0:
		return fmt.Sprintf("tmdb request failed: %v", e.Err)
	case e.Body != "":
		return fmt.Sprintf("tmdb request failed (%d): %s", e.Status, e.Body)
	default:
		return fmt.Sprintf("tmdb request failed (%d)", e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NotFoundError reports a keyword or discovery miss, carrying the keyword
// expression that was attempted so callers can build a fallback experience.
type NotFoundError struct {
	Query  string // free-text keyword query, when resolving
	Filter string // pipe-joined keyword id filter, when discovering
}

func (e *NotFoundError) Error() string {
	if e.Filter != "" {
		return fmt.Sprintf("tmdb discovery returned no results for keywords %s", e.Filter)
	}
	return fmt.Sprintf("no tmdb keyword found for %q", e.Query)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
