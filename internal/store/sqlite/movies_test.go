package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/filmshelf/filmshelf/internal/domain"
	"github.com/filmshelf/filmshelf/internal/store"
)

func newTestUser(t *testing.T, s *Store, name string) *domain.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestAddAndGetMovie(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := newTestUser(t, s, "alice")

	added, err := s.AddMovie(ctx, u.ID, "Heat", 1995, 8.3, "https://img/heat.jpg")
	if err != nil {
		t.Fatalf("AddMovie: %v", err)
	}
	if added.ID == 0 {
		t.Error("expected non-zero movie id")
	}

	got, err := s.GetMovie(ctx, u.ID, "Heat")
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if *got != *added {
		t.Errorf("GetMovie: got %+v, want %+v", got, added)
	}
}

func TestAddMovie_EmptyPosterStoredAsNull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := newTestUser(t, s, "alice")

	if _, err := s.AddMovie(ctx, u.ID, "Heat", 1995, 8.3, ""); err != nil {
		t.Fatalf("AddMovie: %v", err)
	}

	var isNull bool
	if err := s.db.QueryRow(`SELECT poster_url IS NULL FROM movies WHERE title = 'Heat'`).Scan(&isNull); err != nil {
		t.Fatalf("query poster: %v", err)
	}
	if !isNull {
		t.Error("expected NULL poster_url")
	}

	got, err := s.GetMovie(ctx, u.ID, "Heat")
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if got.PosterURL != "" {
		t.Errorf("PosterURL: got %q, want empty", got.PosterURL)
	}
}

func TestAddMovie_DuplicateLeavesRowUntouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := newTestUser(t, s, "alice")

	if _, err := s.AddMovie(ctx, u.ID, "Heat", 1995, 8.3, ""); err != nil {
		t.Fatalf("AddMovie: %v", err)
	}

	_, err := s.AddMovie(ctx, u.ID, "Heat", 2020, 2.0, "x")
	if !errors.Is(err, store.ErrDuplicateMovie) {
		t.Fatalf("expected ErrDuplicateMovie, got %v", err)
	}

	got, err := s.GetMovie(ctx, u.ID, "Heat")
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if got.Year != 1995 || got.Rating != 8.3 || got.PosterURL != "" {
		t.Errorf("existing row changed: %+v", got)
	}
}

func TestAddMovie_SameTitleDifferentUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")

	if _, err := s.AddMovie(ctx, alice.ID, "Heat", 1995, 8, ""); err != nil {
		t.Fatalf("AddMovie alice: %v", err)
	}
	if _, err := s.AddMovie(ctx, bob.ID, "Heat", 1995, 6, ""); err != nil {
		t.Fatalf("AddMovie bob: %v", err)
	}
}

func TestAddMovie_UnknownUser(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddMovie(context.Background(), 999, "Heat", 1995, 8, "")
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListMovies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")

	empty, err := s.ListMovies(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil catalog, got %#v", empty)
	}

	if _, err := s.AddMovie(ctx, alice.ID, "Heat", 1995, 8.3, "p"); err != nil {
		t.Fatalf("AddMovie: %v", err)
	}
	if _, err := s.AddMovie(ctx, alice.ID, "Alien", 1979, 8.5, ""); err != nil {
		t.Fatalf("AddMovie: %v", err)
	}
	if _, err := s.AddMovie(ctx, bob.ID, "Up", 2009, 8.2, ""); err != nil {
		t.Fatalf("AddMovie: %v", err)
	}

	catalog, err := s.ListMovies(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(catalog))
	}
	want := domain.MovieInfo{Year: 1995, Rating: 8.3, PosterURL: "p"}
	if catalog["Heat"] != want {
		t.Errorf("Heat: got %+v, want %+v", catalog["Heat"], want)
	}
	if _, ok := catalog["Up"]; ok {
		t.Error("catalog leaked another user's movie")
	}
}

func TestListMoviesSlice_OrderedByInsertion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := newTestUser(t, s, "alice")

	titles := []string{"Zodiac", "Alien", "Memento"}
	for _, title := range titles {
		if _, err := s.AddMovie(ctx, u.ID, title, 2000, 7, ""); err != nil {
			t.Fatalf("AddMovie: %v", err)
		}
	}

	movies, err := s.ListMoviesSlice(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListMoviesSlice: %v", err)
	}
	for i, m := range movies {
		if m.Title != titles[i] {
			t.Errorf("movies[%d]: got %q, want %q", i, m.Title, titles[i])
		}
	}
}

func TestUpdateMovie_OnlyRatingChanges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := newTestUser(t, s, "alice")

	before, err := s.AddMovie(ctx, u.ID, "Heat", 1995, 8.3, "p")
	if err != nil {
		t.Fatalf("AddMovie: %v", err)
	}

	if err := s.UpdateMovie(ctx, u.ID, "Heat", 9.1); err != nil {
		t.Fatalf("UpdateMovie: %v", err)
	}

	after, err := s.GetMovie(ctx, u.ID, "Heat")
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if after.Rating != 9.1 {
		t.Errorf("Rating: got %v, want 9.1", after.Rating)
	}
	before.Rating = 9.1
	if *after != *before {
		t.Errorf("other columns changed: got %+v, want %+v", after, before)
	}
}

func TestUpdateMovie_NotFound(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "alice")

	err := s.UpdateMovie(context.Background(), u.ID, "Missing", 5)
	if !errors.Is(err, store.ErrMovieNotFound) {
		t.Errorf("expected ErrMovieNotFound, got %v", err)
	}
}

func TestDeleteMovie(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := newTestUser(t, s, "alice")

	if _, err := s.AddMovie(ctx, u.ID, "Heat", 1995, 8.3, ""); err != nil {
		t.Fatalf("AddMovie: %v", err)
	}
	if err := s.DeleteMovie(ctx, u.ID, "Heat"); err != nil {
		t.Fatalf("DeleteMovie: %v", err)
	}
	if _, err := s.GetMovie(ctx, u.ID, "Heat"); !errors.Is(err, store.ErrMovieNotFound) {
		t.Errorf("after delete: expected ErrMovieNotFound, got %v", err)
	}
	if err := s.DeleteMovie(ctx, u.ID, "Heat"); !errors.Is(err, store.ErrMovieNotFound) {
		t.Errorf("second delete: expected ErrMovieNotFound, got %v", err)
	}
}

func TestDeleteMovie_MissingLeavesRowsUntouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")

	if _, err := s.AddMovie(ctx, alice.ID, "Heat", 1995, 8.3, ""); err != nil {
		t.Fatalf("AddMovie: %v", err)
	}
	if _, err := s.AddMovie(ctx, bob.ID, "Alien", 1979, 8.5, ""); err != nil {
		t.Fatalf("AddMovie: %v", err)
	}

	if err := s.DeleteMovie(ctx, alice.ID, "Missing"); !errors.Is(err, store.ErrMovieNotFound) {
		t.Errorf("delete missing: expected ErrMovieNotFound, got %v", err)
	}
	if err := s.DeleteMovie(ctx, alice.ID, "Alien"); !errors.Is(err, store.ErrMovieNotFound) {
		t.Errorf("delete other user's title: expected ErrMovieNotFound, got %v", err)
	}

	for _, u := range []*domain.User{alice, bob} {
		n, err := s.CountMovies(ctx, u.ID)
		if err != nil {
			t.Fatalf("CountMovies: %v", err)
		}
		if n != 1 {
			t.Errorf("CountMovies(%s): got %d, want 1", u.Username, n)
		}
	}
}

func TestCountMovies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := newTestUser(t, s, "alice")

	for i, title := range []string{"A", "B", "C"} {
		if _, err := s.AddMovie(ctx, u.ID, title, 2000+i, 5, ""); err != nil {
			t.Fatalf("AddMovie: %v", err)
		}
	}

	n, err := s.CountMovies(ctx, u.ID)
	if err != nil {
		t.Fatalf("CountMovies: %v", err)
	}
	if n != 3 {
		t.Errorf("CountMovies: got %d, want 3", n)
	}
}
