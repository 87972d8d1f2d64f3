package omdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for OMDb lookups.
var (
	ErrEmptyQuery   = errors.New("omdb: query has neither title nor imdb id")
	ErrNoAPIKey     = errors.New("omdb: no api key configured")
	ErrNotFound     = errors.New("omdb: not found")
	ErrUnauthorized = errors.New("omdb: api key rejected")
	ErrRateLimited  = errors.New("omdb: rate limited by server")
	ErrServer       = errors.New("omdb: server error")
	ErrMalformed    = errors.New("omdb: malformed response")
	ErrCircuitOpen  = errors.New("omdb: too many recent failures, lookups paused")
)

// Error wraps an underlying error with the query that caused it.
type Error struct {
	Query Query
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("omdb lookup [%s]: %v", e.Query, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(q Query, err error) error {
	return &Error{Query: q, Err: err}
}
