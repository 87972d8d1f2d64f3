package console

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/filmshelf/filmshelf/internal/domain"
	"github.com/filmshelf/filmshelf/internal/export"
)

func (c *Console) listMovies(ctx context.Context) error {
	movies, err := c.catalog.Movies(ctx, c.session)
	if err != nil {
		return err
	}
	c.out.Movies(movies)
	return nil
}

func (c *Console) addMovie(ctx context.Context) error {
	title, err := c.prompt.NonEmpty(ctx, "Add which movie? ")
	if err != nil {
		return err
	}

	res, err := c.catalog.AddMovie(ctx, c.session, title, c.manualEntry)
	if err != nil {
		return err
	}

	c.out.MovieAdded(res.Movie, res.Source)
	return nil
}

// manualEntry is the fallback used when a lookup fails.
func (c *Console) manualEntry(ctx context.Context) (domain.ManualEntry, error) {
	c.out.Println("Movie not found in OMDb or API issue. Add manually.")

	rating, err := c.prompt.Float(ctx, "Rate 1-10 ", domain.MinRating, domain.MaxRating)
	if err != nil {
		return domain.ManualEntry{}, err
	}
	year, err := c.prompt.Int(ctx, "Year ", domain.MinYear, domain.MaxYear)
	if err != nil {
		return domain.ManualEntry{}, err
	}
	return domain.ManualEntry{Rating: rating, Year: year}, nil
}

func (c *Console) deleteMovie(ctx context.Context) error {
	title, err := c.prompt.NonEmpty(ctx, "Delete which movie? ")
	if err != nil {
		return err
	}
	if err := c.catalog.DeleteMovie(ctx, c.session, title); err != nil {
		return err
	}
	c.out.Success(fmt.Sprintf("Deleted '%s'.", title))
	return nil
}

func (c *Console) updateMovie(ctx context.Context) error {
	title, err := c.prompt.NonEmpty(ctx, "Update rating of which movie? ")
	if err != nil {
		return err
	}

	// Check first so the user is not asked for a rating of a missing movie.
	catalog, err := c.catalog.ListMovies(ctx, c.session)
	if err != nil {
		return err
	}
	if _, ok := catalog[title]; !ok {
		c.out.Error("Error: Movie not found.")
		return nil
	}

	rating, err := c.prompt.Float(ctx, "New rating 1-10 ", domain.MinRating, domain.MaxRating)
	if err != nil {
		return err
	}
	if err := c.catalog.UpdateRating(ctx, c.session, title, rating); err != nil {
		return err
	}
	c.out.Success(fmt.Sprintf("Updated '%s' to %s.", title, FormatRating(rating)))
	return nil
}

func (c *Console) stats(ctx context.Context) error {
	s, err := c.catalog.Stats(ctx, c.session)
	if err != nil {
		return err
	}

	c.out.Stats(s)
	return nil
}

func (c *Console) randomMovie(ctx context.Context) error {
	m, err := c.catalog.RandomMovie(ctx, c.session)
	if err != nil {
		return err
	}
	c.out.RandomMovie(m)
	return nil
}

func (c *Console) searchMovie(ctx context.Context) error {
	query, err := c.prompt.NonEmpty(ctx, "Enter part of movie name ")
	if err != nil {
		return err
	}

	res, err := c.catalog.Search(ctx, c.session, query)
	if err != nil {
		return err
	}

	c.out.SearchResult(res)
	return nil
}

func (c *Console) sortedByRating(ctx context.Context) error {
	movies, err := c.catalog.SortByRating(ctx, c.session)
	if err != nil {
		return err
	}
	c.out.Movies(movies)
	return nil
}

func (c *Console) generateWebsite(ctx context.Context) error {
	movies, err := c.catalog.Movies(ctx, c.session)
	if err != nil {
		return err
	}

	err = export.WriteFile(c.exportPath, func(w io.Writer) error {
		return export.HTML(ctx, w, c.exportTitle, movies)
	})
	if err != nil {
		return err
	}

	c.logger.Info("website generated", "path", c.exportPath, "movies", len(movies))
	c.out.Success("Website was generated successfully.")
	return nil
}

func (c *Console) switchUser(ctx context.Context) error {
	return c.selectUser(ctx)
}

// selectUser shows the user selection screen until a user is chosen or
// created.
func (c *Console) selectUser(ctx context.Context) error {
	for {
		users, err := c.users.ListUsers(ctx)
		if err != nil {
			return err
		}

		c.out.Header("Select a user:")
		for i, u := range users {
			c.out.Printf("%d. %s\n", i+1, u.Username)
		}
		createChoice := len(users) + 1
		c.out.Printf("%d. Create new user\n", createChoice)

		choice, err := c.prompt.Line(ctx, "Enter choice: ")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(choice)
		if err != nil {
			c.out.Error("Please enter a number.")
			continue
		}

		switch {
		case n >= 1 && n <= len(users):
			c.session = domain.NewSession(users[n-1])
			c.out.Success(fmt.Sprintf("Welcome, %s!", c.session.Username))
			return nil
		case n == createChoice:
			name, err := c.prompt.NonEmpty(ctx, "Enter new username: ")
			if err != nil {
				return err
			}
			u, err := c.users.CreateUser(ctx, name)
			if err != nil {
				c.printError(err)
				continue
			}
			c.out.Success(fmt.Sprintf("User '%s' created.", u.Username))
		default:
			c.out.Error("Invalid choice, try again.")
		}
	}
}
