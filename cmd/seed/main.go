// Package main provides a tool to seed the database with demo movies.
//
// It adds a random selection of well-known movies to every user's catalog,
// skipping titles the user already owns. No OMDb lookups are made.
//
// Usage:
//
//	DB_PATH=~/.filmshelf/movies.db go run ./cmd/seed
//	DB_PATH=~/.filmshelf/movies.db go run ./cmd/seed --create-users  # Also create demo users
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"

	"github.com/filmshelf/filmshelf/internal/config"
	"github.com/filmshelf/filmshelf/internal/domain"
	domainerrors "github.com/filmshelf/filmshelf/internal/errors"
	"github.com/filmshelf/filmshelf/internal/service"
	"github.com/filmshelf/filmshelf/internal/store/sqlite"
	"github.com/filmshelf/filmshelf/internal/validation"
)

var (
	createUsers = flag.Bool("create-users", false, "Create demo users before seeding")
	perUser     = flag.Int("movies", 8, "Movies to add per user")
)

var demoUsers = []string{"alice", "bob", "carol"}

type demoMovie struct {
	title  string
	year   int
	rating float64
}

var demoMovies = []demoMovie{
	{"The Shawshank Redemption", 1994, 9.3},
	{"The Godfather", 1972, 9.2},
	{"The Dark Knight", 2008, 9.0},
	{"Pulp Fiction", 1994, 8.9},
	{"Fight Club", 1999, 8.8},
	{"Inception", 2010, 8.8},
	{"The Matrix", 1999, 8.7},
	{"Goodfellas", 1990, 8.7},
	{"Se7en", 1995, 8.6},
	{"Spirited Away", 2001, 8.6},
	{"Heat", 1995, 8.3},
	{"Batman", 1989, 7.5},
	{"Batman Returns", 1992, 7.1},
	{"Titanic", 1997, 7.9},
	{"Catwoman", 2004, 3.4},
}

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(config.Overrides{})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("Opening database at: %s\n", cfg.Database.Path)

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(cfg.Database.Path, quiet)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	v := validation.New()
	usersSvc := service.NewUserService(s, v, quiet)
	catalog := service.NewCatalogService(s, nil, v, quiet)

	ctx := context.Background()

	if *createUsers {
		createDemoUsers(ctx, usersSvc)
	}

	users, err := usersSvc.ListUsers(ctx)
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}
	if len(users) == 0 {
		log.Fatal("No users found in database. Create a user first or pass --create-users.")
	}

	fmt.Printf("Found %d users\n", len(users))

	n := min(max(*perUser, 0), len(demoMovies))
	for _, u := range users {
		fmt.Printf("\nSeeding movies for user: %s (%d)\n", u.Username, u.ID)

		session := domain.NewSession(u)
		added := 0
		for _, i := range rand.Perm(len(demoMovies))[:n] {
			m := demoMovies[i]
			_, err := catalog.AddManual(ctx, session, m.title, domain.ManualEntry{Rating: m.rating, Year: m.year})
			switch {
			case errors.Is(err, domainerrors.ErrAlreadyExists):
				fmt.Printf("  Skipped %s (already present)\n", m.title)
			case err != nil:
				log.Printf("Failed to add %s: %v", m.title, err)
			default:
				added++
			}
		}
		fmt.Printf("  Added %d movies\n", added)
	}

	fmt.Println("\nSeeding complete!")
}

func createDemoUsers(ctx context.Context, users *service.UserService) {
	for _, name := range demoUsers {
		u, err := users.CreateUser(ctx, name)
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			fmt.Printf("User %s already exists\n", name)
			continue
		}
		if err != nil {
			log.Printf("Failed to create user %s: %v", name, err)
			continue
		}
		fmt.Printf("Created user: %s (%d)\n", u.Username, u.ID)
	}
}
