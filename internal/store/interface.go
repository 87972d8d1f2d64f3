// Package store defines the persistence interface for filmshelf.
package store

import (
	"context"

	"github.com/filmshelf/filmshelf/internal/domain"
)

// Store defines the interface for all persistence operations.
// Every mutating call is a single statement committed immediately.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID int64) error

	// Movies
	ListMovies(ctx context.Context, userID int64) (domain.Catalog, error)
	ListMoviesSlice(ctx context.Context, userID int64) ([]*domain.Movie, error)
	GetMovie(ctx context.Context, userID int64, title string) (*domain.Movie, error)
	AddMovie(ctx context.Context, userID int64, title string, year int, rating float64, posterURL string) (*domain.Movie, error)
	DeleteMovie(ctx context.Context, userID int64, title string) error
	UpdateMovie(ctx context.Context, userID int64, title string, rating float64) error
	CountMovies(ctx context.Context, userID int64) (int, error)
}
