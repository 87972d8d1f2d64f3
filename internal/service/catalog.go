package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/filmshelf/filmshelf/internal/domain"
	domainerrors "github.com/filmshelf/filmshelf/internal/errors"
	"github.com/filmshelf/filmshelf/internal/metadata/omdb"
	"github.com/filmshelf/filmshelf/internal/normalize"
	"github.com/filmshelf/filmshelf/internal/store"
	"github.com/filmshelf/filmshelf/internal/validation"
)

// Lookuper resolves a title to a metadata record.
type Lookuper interface {
	Lookup(ctx context.Context, q omdb.Query) omdb.Result
}

// ManualEntryFunc asks the user for the fields a lookup would have provided.
// It is only called after a lookup fails.
type ManualEntryFunc func(ctx context.Context) (domain.ManualEntry, error)

// Source records where a new movie's details came from.
type Source string

// Movie detail sources.
const (
	SourceLookup Source = "lookup"
	SourceManual Source = "manual"
)

// AddResult describes a successful add. LookupErr is set when the lookup
// failed and the movie was built from manual entry.
type AddResult struct {
	Movie     *domain.Movie
	Source    Source
	LookupErr error
}

// ErrNoLookup is reported as the lookup failure when no client is configured.
var ErrNoLookup = errors.New("metadata lookup is not configured")

// CatalogService orchestrates operations on the active user's movies.
type CatalogService struct {
	store     store.Store
	lookup    Lookuper
	validator *validation.Validator
	logger    *slog.Logger
	intN      func(n int) int
}

// NewCatalogService creates a new catalog service. lookup may be nil, in
// which case every add goes through manual entry.
func NewCatalogService(store store.Store, lookup Lookuper, validator *validation.Validator, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     store,
		lookup:    lookup,
		validator: validator,
		logger:    logger,
		intN:      rand.IntN,
	}
}

// SetRandom replaces the source used by RandomMovie. intN must return a
// value in [0, n).
func (s *CatalogService) SetRandom(intN func(n int) int) {
	s.intN = intN
}

// ListMovies returns the user's catalog keyed by title.
func (s *CatalogService) ListMovies(ctx context.Context, session domain.Session) (domain.Catalog, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	catalog, err := s.store.ListMovies(ctx, session.UserID)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list movies")
	}
	return catalog, nil
}

// Movies returns the user's movies in insertion order.
func (s *CatalogService) Movies(ctx context.Context, session domain.Session) ([]*domain.Movie, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	movies, err := s.store.ListMoviesSlice(ctx, session.UserID)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list movies")
	}
	return movies, nil
}

// AddMovie adds title to the catalog, preferring looked-up details.
//
// A title the user already owns is rejected before any lookup. When the
// lookup finds the title, its canonical title, year, rating and poster are
// stored. Otherwise fallback supplies year and rating and the typed title is
// stored without a poster.
func (s *CatalogService) AddMovie(ctx context.Context, session domain.Session, title string, fallback ManualEntryFunc) (*AddResult, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	title = normalize.Title(title)
	if title == "" {
		return nil, domainerrors.Validation("title is required")
	}

	if err := s.ensureAbsent(ctx, session, title); err != nil {
		return nil, err
	}

	log := s.logger.With("user_id", session.UserID, "title", title)

	rec, lookupErr := s.tryLookup(ctx, title)
	if lookupErr == nil {
		movie, err := s.store.AddMovie(ctx, session.UserID, rec.title, rec.year, rec.rating, rec.poster)
		if err != nil {
			return nil, s.persistError(err, rec.title)
		}
		log.Info("movie added", "source", SourceLookup, "stored_title", rec.title)
		return &AddResult{Movie: movie, Source: SourceLookup}, nil
	}

	log.Info("lookup failed, falling back to manual entry", "error", lookupErr)

	if fallback == nil {
		return nil, domainerrors.Wrap(lookupErr, domainerrors.CodeUnavailable, "lookup failed and manual entry is not available")
	}

	entry, err := fallback(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(entry); err != nil {
		return nil, err
	}

	movie, err := s.store.AddMovie(ctx, session.UserID, title, entry.Year, entry.Rating, "")
	if err != nil {
		return nil, s.persistError(err, title)
	}

	log.Info("movie added", "source", SourceManual)
	return &AddResult{Movie: movie, Source: SourceManual, LookupErr: lookupErr}, nil
}

// AddManual adds a movie from caller-provided details without a lookup.
func (s *CatalogService) AddManual(ctx context.Context, session domain.Session, title string, entry domain.ManualEntry) (*domain.Movie, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	title = normalize.Title(title)
	if title == "" {
		return nil, domainerrors.Validation("title is required")
	}
	if err := s.validator.Validate(entry); err != nil {
		return nil, err
	}

	movie, err := s.store.AddMovie(ctx, session.UserID, title, entry.Year, entry.Rating, "")
	if err != nil {
		return nil, s.persistError(err, title)
	}

	s.logger.Info("movie added", "user_id", session.UserID, "title", title, "source", SourceManual)
	return movie, nil
}

// UpdateRating changes the rating of an existing movie.
func (s *CatalogService) UpdateRating(ctx context.Context, session domain.Session, title string, rating float64) error {
	if err := requireSession(session); err != nil {
		return err
	}

	req := domain.RatingUpdate{Title: normalize.Title(title), Rating: rating}
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	if err := s.store.UpdateMovie(ctx, session.UserID, req.Title, req.Rating); err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			return domainerrors.NotFoundf("movie %q not found", req.Title)
		}
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to update movie")
	}

	s.logger.Info("movie updated", "user_id", session.UserID, "title", req.Title, "rating", req.Rating)
	return nil
}

// DeleteMovie removes a movie by exact title.
func (s *CatalogService) DeleteMovie(ctx context.Context, session domain.Session, title string) error {
	if err := requireSession(session); err != nil {
		return err
	}

	title = normalize.Title(title)
	if title == "" {
		return domainerrors.Validation("title is required")
	}

	if err := s.store.DeleteMovie(ctx, session.UserID, title); err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			return domainerrors.NotFoundf("movie %q not found", title)
		}
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to delete movie")
	}

	s.logger.Info("movie deleted", "user_id", session.UserID, "title", title)
	return nil
}

// lookupRecord is a lookup hit normalized to catalog values.
type lookupRecord struct {
	title  string
	year   int
	rating float64
	poster string
}

// tryLookup returns the normalized record for title, or the reason no
// usable record is available. A record that fails normalization counts as
// a failed lookup.
func (s *CatalogService) tryLookup(ctx context.Context, title string) (*lookupRecord, error) {
	if s.lookup == nil {
		return nil, ErrNoLookup
	}

	res := s.lookup.Lookup(ctx, omdb.Query{Title: title})
	if !res.Found() {
		if res.Err == nil {
			return nil, fmt.Errorf("lookup %s", res.Kind)
		}
		return nil, res.Err
	}

	year, err := normalize.Year(res.Record.Year)
	if err != nil {
		return nil, fmt.Errorf("normalize lookup year: %w", err)
	}
	rating, err := normalize.Rating(res.Record.Rating)
	if err != nil {
		return nil, fmt.Errorf("normalize lookup rating: %w", err)
	}

	stored := normalize.Title(res.Record.Title)
	if stored == "" {
		stored = title
	}

	return &lookupRecord{
		title:  stored,
		year:   year,
		rating: rating,
		poster: normalize.Poster(res.Record.Poster),
	}, nil
}

// ensureAbsent rejects titles the user already owns.
func (s *CatalogService) ensureAbsent(ctx context.Context, session domain.Session, title string) error {
	_, err := s.store.GetMovie(ctx, session.UserID, title)
	switch {
	case err == nil:
		return domainerrors.AlreadyExistsf("movie %q already exists, use update instead", title)
	case errors.Is(err, store.ErrMovieNotFound):
		return nil
	default:
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to check for existing movie")
	}
}

func (s *CatalogService) persistError(err error, title string) error {
	switch {
	case errors.Is(err, store.ErrDuplicateMovie):
		return domainerrors.AlreadyExistsf("movie %q already exists, use update instead", title)
	case errors.Is(err, store.ErrUserNotFound):
		return domainerrors.NotFound("active user no longer exists")
	default:
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save movie")
	}
}

func requireSession(session domain.Session) error {
	if !session.Valid() {
		return domainerrors.Validation("no user selected")
	}
	return nil
}
