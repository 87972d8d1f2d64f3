package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/filmshelf/filmshelf/internal/domain"
	"github.com/filmshelf/filmshelf/internal/store"
)

// movieColumns must match the scan order in scanMovie.
const movieColumns = `id, user_id, title, year, rating, poster_url`

func scanMovie(scanner interface{ Scan(dest ...any) error }) (*domain.Movie, error) {
	var (
		m      domain.Movie
		poster sql.NullString
	)
	if err := scanner.Scan(&m.ID, &m.UserID, &m.Title, &m.Year, &m.Rating, &poster); err != nil {
		return nil, err
	}
	m.PosterURL = poster.String
	return &m, nil
}

// ListMovies returns the user's catalog keyed by title.
// The map is empty, never nil, when the user has no movies.
func (s *Store) ListMovies(ctx context.Context, userID int64) (domain.Catalog, error) {
	movies, err := s.ListMoviesSlice(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog := make(domain.Catalog, len(movies))
	for _, m := range movies {
		catalog[m.Title] = m.Info()
	}
	return catalog, nil
}

// ListMoviesSlice returns the user's movies ordered by insertion.
func (s *Store) ListMoviesSlice(ctx context.Context, userID int64) ([]*domain.Movie, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []*domain.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GetMovie returns the movie with the exact title.
// Returns store.ErrMovieNotFound if absent.
func (s *Store) GetMovie(ctx context.Context, userID int64, title string) (*domain.Movie, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE user_id = ? AND title = ?`, userID, title)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return m, nil
}

// AddMovie inserts a movie. An empty posterURL is stored as NULL.
// Returns store.ErrDuplicateMovie if the user already owns the title, and
// store.ErrUserNotFound if the user does not exist.
func (s *Store) AddMovie(ctx context.Context, userID int64, title string, year int, rating float64, posterURL string) (*domain.Movie, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO movies (user_id, title, year, rating, poster_url) VALUES (?, ?, ?, ?, ?)`,
		userID, title, year, rating, nullString(posterURL))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, store.ErrDuplicateMovie
		case isForeignKeyViolation(err):
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert movie: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("movie id: %w", err)
	}

	s.logger.Debug("movie added", "user_id", userID, "title", title)
	return &domain.Movie{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Year:      year,
		Rating:    rating,
		PosterURL: posterURL,
	}, nil
}

// DeleteMovie removes a movie by exact title.
// Returns store.ErrMovieNotFound if no row was deleted.
func (s *Store) DeleteMovie(ctx context.Context, userID int64, title string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM movies WHERE user_id = ? AND title = ?`, userID, title)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return s.expectOneRow(res, "delete movie")
}

// UpdateMovie changes the rating of a movie. No other column is touched.
// Returns store.ErrMovieNotFound if no row was updated.
func (s *Store) UpdateMovie(ctx context.Context, userID int64, title string, rating float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE movies SET rating = ? WHERE user_id = ? AND title = ?`, rating, userID, title)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	return s.expectOneRow(res, "update movie")
}

// CountMovies returns how many movies the user owns.
func (s *Store) CountMovies(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movies WHERE user_id = ?`, userID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

func (s *Store) expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return store.ErrMovieNotFound
	}
	return nil
}
