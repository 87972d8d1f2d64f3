package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmshelf/filmshelf/internal/domain"
	domainerrors "github.com/filmshelf/filmshelf/internal/errors"
	"github.com/filmshelf/filmshelf/internal/metadata/omdb"
	"github.com/filmshelf/filmshelf/internal/store/sqlite"
	"github.com/filmshelf/filmshelf/internal/validation"
)

type fakeLookuper struct {
	result  omdb.Result
	queries []omdb.Query
}

func (f *fakeLookuper) Lookup(_ context.Context, q omdb.Query) omdb.Result {
	f.queries = append(f.queries, q)
	return f.result
}

func foundResult(title, year, rating, poster string) omdb.Result {
	return omdb.Result{
		Kind:   omdb.KindFound,
		Record: omdb.Record{Title: title, Year: year, Rating: rating, Poster: poster},
	}
}

func manual(rating float64, year int) ManualEntryFunc {
	return func(context.Context) (domain.ManualEntry, error) {
		return domain.ManualEntry{Rating: rating, Year: year}, nil
	}
}

func failIfCalled(t *testing.T) ManualEntryFunc {
	return func(context.Context) (domain.ManualEntry, error) {
		t.Fatal("manual entry must not be requested")
		return domain.ManualEntry{}, nil
	}
}

type catalogFixture struct {
	svc     *CatalogService
	users   *UserService
	store   *sqlite.Store
	lookup  *fakeLookuper
	session domain.Session
}

func setupCatalog(t *testing.T) *catalogFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	v := validation.New()
	lookup := &fakeLookuper{result: omdb.Result{Kind: omdb.KindNotFound, Err: omdb.ErrNotFound}}
	users := NewUserService(st, v, logger)

	u, err := users.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	return &catalogFixture{
		svc:     NewCatalogService(st, lookup, v, logger),
		users:   users,
		store:   st,
		lookup:  lookup,
		session: domain.NewSession(u),
	}
}

func (f *catalogFixture) addManual(t *testing.T, title string, rating float64) {
	t.Helper()
	_, err := f.svc.AddManual(context.Background(), f.session, title, domain.ManualEntry{Rating: rating, Year: 2000})
	require.NoError(t, err)
}

func TestAddMovie_LookupFound(t *testing.T) {
	f := setupCatalog(t)
	f.lookup.result = foundResult("The Matrix", "1999", "8.7", "https://img/matrix.jpg")

	res, err := f.svc.AddMovie(context.Background(), f.session, "the matrix", failIfCalled(t))
	require.NoError(t, err)

	assert.Equal(t, SourceLookup, res.Source)
	assert.NoError(t, res.LookupErr)
	assert.Equal(t, "The Matrix", res.Movie.Title)
	assert.Equal(t, 1999, res.Movie.Year)
	assert.Equal(t, 8.7, res.Movie.Rating)
	assert.Equal(t, "https://img/matrix.jpg", res.Movie.PosterURL)
	assert.Equal(t, []omdb.Query{{Title: "the matrix"}}, f.lookup.queries)

	catalog, err := f.svc.ListMovies(context.Background(), f.session)
	require.NoError(t, err)
	assert.Contains(t, catalog, "The Matrix")
	assert.NotContains(t, catalog, "the matrix")
}

func TestAddMovie_LookupNormalizesFields(t *testing.T) {
	f := setupCatalog(t)
	f.lookup.result = foundResult("Lost", "2004–2010", "N/A", "N/A")

	res, err := f.svc.AddMovie(context.Background(), f.session, "Lost", failIfCalled(t))
	require.NoError(t, err)

	assert.Equal(t, 2004, res.Movie.Year)
	assert.Zero(t, res.Movie.Rating)
	assert.Empty(t, res.Movie.PosterURL)
}

func TestAddMovie_FallbackOnNotFound(t *testing.T) {
	f := setupCatalog(t)

	res, err := f.svc.AddMovie(context.Background(), f.session, "My Home Video", manual(6.5, 2015))
	require.NoError(t, err)

	assert.Equal(t, SourceManual, res.Source)
	assert.ErrorIs(t, res.LookupErr, omdb.ErrNotFound)
	assert.Equal(t, "My Home Video", res.Movie.Title)
	assert.Equal(t, 2015, res.Movie.Year)
	assert.Equal(t, 6.5, res.Movie.Rating)
	assert.Empty(t, res.Movie.PosterURL)
}

func TestAddMovie_FallbackOnTransportError(t *testing.T) {
	f := setupCatalog(t)
	f.lookup.result = omdb.Result{Kind: omdb.KindTransportError, Err: omdb.ErrServer}

	res, err := f.svc.AddMovie(context.Background(), f.session, "Heat", manual(8, 1995))
	require.NoError(t, err)
	assert.Equal(t, SourceManual, res.Source)
	assert.ErrorIs(t, res.LookupErr, omdb.ErrServer)
}

func TestAddMovie_UnparsableYearFallsBack(t *testing.T) {
	f := setupCatalog(t)
	f.lookup.result = foundResult("Heat", "unknown", "8.3", "p")

	res, err := f.svc.AddMovie(context.Background(), f.session, "Heat", manual(7, 1995))
	require.NoError(t, err)
	assert.Equal(t, SourceManual, res.Source)
	assert.Equal(t, 1995, res.Movie.Year)
	assert.Empty(t, res.Movie.PosterURL)
}

func TestAddMovie_NoLookupConfigured(t *testing.T) {
	f := setupCatalog(t)
	f.svc.lookup = nil

	res, err := f.svc.AddMovie(context.Background(), f.session, "Heat", manual(7, 1995))
	require.NoError(t, err)
	assert.ErrorIs(t, res.LookupErr, ErrNoLookup)
}

func TestAddMovie_ExistingTitleRejectedBeforeLookup(t *testing.T) {
	f := setupCatalog(t)
	f.addManual(t, "Heat", 8)

	_, err := f.svc.AddMovie(context.Background(), f.session, "Heat", failIfCalled(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "use update instead")
	assert.Empty(t, f.lookup.queries)
}

func TestAddMovie_LookupTitleCollidesWithExisting(t *testing.T) {
	f := setupCatalog(t)
	f.addManual(t, "The Matrix", 9)
	f.lookup.result = foundResult("The Matrix", "1999", "8.7", "p")

	_, err := f.svc.AddMovie(context.Background(), f.session, "matrix", failIfCalled(t))
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	m, err := f.store.GetMovie(context.Background(), f.session.UserID, "The Matrix")
	require.NoError(t, err)
	assert.Equal(t, 9.0, m.Rating)
	assert.Equal(t, 2000, m.Year)
}

func TestAddMovie_InvalidManualEntry(t *testing.T) {
	f := setupCatalog(t)

	tests := []struct {
		name   string
		rating float64
		year   int
	}{
		{"rating too low", 0.5, 2000},
		{"rating too high", 11, 2000},
		{"year too early", 5, 1800},
		{"year too late", 5, 2200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddMovie(context.Background(), f.session, "Heat", manual(tt.rating, tt.year))
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}

	n, err := f.store.CountMovies(context.Background(), f.session.UserID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAddMovie_FallbackError(t *testing.T) {
	f := setupCatalog(t)
	wantErr := errors.New("input closed")

	_, err := f.svc.AddMovie(context.Background(), f.session, "Heat", func(context.Context) (domain.ManualEntry, error) {
		return domain.ManualEntry{}, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestAddMovie_NilFallback(t *testing.T) {
	f := setupCatalog(t)

	_, err := f.svc.AddMovie(context.Background(), f.session, "Heat", nil)
	assert.ErrorIs(t, err, domainerrors.ErrUnavailable)
}

func TestAddMovie_EmptyTitle(t *testing.T) {
	f := setupCatalog(t)

	_, err := f.svc.AddMovie(context.Background(), f.session, "   ", failIfCalled(t))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAddMovie_NoSession(t *testing.T) {
	f := setupCatalog(t)

	_, err := f.svc.AddMovie(context.Background(), domain.Session{}, "Heat", failIfCalled(t))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAddManual_Duplicate(t *testing.T) {
	f := setupCatalog(t)
	f.addManual(t, "Heat", 8)

	_, err := f.svc.AddManual(context.Background(), f.session, "Heat", domain.ManualEntry{Rating: 5, Year: 1995})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestUpdateRating(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()
	f.addManual(t, "Heat", 8)

	require.NoError(t, f.svc.UpdateRating(ctx, f.session, "Heat", 9.5))

	catalog, err := f.svc.ListMovies(ctx, f.session)
	require.NoError(t, err)
	assert.Equal(t, domain.MovieInfo{Year: 2000, Rating: 9.5}, catalog["Heat"])

	assert.ErrorIs(t, f.svc.UpdateRating(ctx, f.session, "Missing", 5), domainerrors.ErrNotFound)
	assert.ErrorIs(t, f.svc.UpdateRating(ctx, f.session, "Heat", 10.5), domainerrors.ErrValidation)
	assert.ErrorIs(t, f.svc.UpdateRating(ctx, f.session, "", 5), domainerrors.ErrValidation)
}

func TestDeleteMovie(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()
	f.addManual(t, "Heat", 8)

	require.NoError(t, f.svc.DeleteMovie(ctx, f.session, "Heat"))
	assert.ErrorIs(t, f.svc.DeleteMovie(ctx, f.session, "Heat"), domainerrors.ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteMovie(ctx, f.session, " "), domainerrors.ErrValidation)
}

func TestDeleteMovie_MissingKeepsCatalog(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()
	f.addManual(t, "Heat", 8)

	assert.ErrorIs(t, f.svc.DeleteMovie(ctx, f.session, "Missing"), domainerrors.ErrNotFound)

	n, err := f.store.CountMovies(ctx, f.session.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCatalog_IsolatedPerUser(t *testing.T) {
	f := setupCatalog(t)
	ctx := context.Background()
	f.addManual(t, "Heat", 8)

	bob, err := f.users.CreateUser(ctx, "bob")
	require.NoError(t, err)
	bobSession := domain.NewSession(bob)

	catalog, err := f.svc.ListMovies(ctx, bobSession)
	require.NoError(t, err)
	assert.Empty(t, catalog)

	assert.ErrorIs(t, f.svc.DeleteMovie(ctx, bobSession, "Heat"), domainerrors.ErrNotFound)
}
