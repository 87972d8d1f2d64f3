package store

import (
	domainerrors "github.com/filmshelf/filmshelf/internal/errors"
)

// Sentinel errors returned by Store implementations. They carry domain codes
// so callers can match either the specific sentinel's code or the generic
// domain error with errors.Is.
var (
	ErrMovieNotFound  = domainerrors.NotFound("movie not found")
	ErrDuplicateMovie = domainerrors.AlreadyExists("movie already exists")
	ErrUserNotFound   = domainerrors.NotFound("user not found")
	ErrDuplicateUser  = domainerrors.AlreadyExists("user already exists")
)
