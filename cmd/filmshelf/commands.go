package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli"

	"github.com/filmshelf/filmshelf/internal/console"
	"github.com/filmshelf/filmshelf/internal/domain"
	domainerrors "github.com/filmshelf/filmshelf/internal/errors"
	"github.com/filmshelf/filmshelf/internal/export"
	"github.com/filmshelf/filmshelf/internal/service"
)

const (
	jsonFlag     = "json"
	manualFlag   = "manual"
	yearFlag     = "year"
	ratingFlag   = "rating"
	outFlag      = "out"
	titleFlag    = "title"
	markdownFlag = "markdown"
)

var jsonOutput = cli.BoolFlag{
	Name:  jsonFlag,
	Usage: "print JSON instead of text",
}

func commands(ctx context.Context) []cli.Command {
	return []cli.Command{
		{
			Name:    "shell",
			Aliases: []string{"sh"},
			Usage:   "Interactive menu",
			Action:  withRuntime(ctx, runShell),
		},
		{
			Name:  "users",
			Usage: "Manage users",
			Subcommands: []cli.Command{
				{
					Name:   "list",
					Usage:  "List users",
					Action: withRuntime(ctx, runUsersList),
				},
				{
					Name:      "create",
					Usage:     "Create a user",
					ArgsUsage: "<username>",
					Action:    withRuntime(ctx, runUsersCreate),
				},
				{
					Name:      "delete",
					Usage:     "Delete a user and all of their movies",
					ArgsUsage: "<username>",
					Action:    withRuntime(ctx, runUsersDelete),
				},
			},
		},
		{
			Name:   "list",
			Usage:  "List movies",
			Flags:  []cli.Flag{jsonOutput},
			Action: withRuntime(ctx, runList),
		},
		{
			Name:      "add",
			Usage:     "Add a movie, looking it up on OMDb unless --manual is given",
			ArgsUsage: "<title>",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  manualFlag,
					Usage: "skip the lookup and store --year and --rating",
				},
				cli.IntFlag{
					Name:  yearFlag,
					Usage: "release year, used with --manual or when the lookup fails",
				},
				cli.Float64Flag{
					Name:  ratingFlag,
					Usage: "rating 1-10, used with --manual or when the lookup fails",
				},
			},
			Action: withRuntime(ctx, runAdd),
		},
		{
			Name:      "delete",
			Usage:     "Delete a movie",
			ArgsUsage: "<title>",
			Action:    withRuntime(ctx, runDelete),
		},
		{
			Name:      "update",
			Usage:     "Update the rating of a movie",
			ArgsUsage: "<title>",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  ratingFlag,
					Usage: "new rating 1-10",
				},
			},
			Action: withRuntime(ctx, runUpdate),
		},
		{
			Name:   "stats",
			Usage:  "Rating statistics",
			Flags:  []cli.Flag{jsonOutput},
			Action: withRuntime(ctx, runStats),
		},
		{
			Name:   "random",
			Usage:  "Pick a random movie",
			Action: withRuntime(ctx, runRandom),
		},
		{
			Name:      "search",
			Usage:     "Search movies by title",
			ArgsUsage: "<query>",
			Action:    withRuntime(ctx, runSearch),
		},
		{
			Name:   "sorted",
			Usage:  "List movies by rating, best first",
			Flags:  []cli.Flag{jsonOutput},
			Action: withRuntime(ctx, runSorted),
		},
		{
			Name:  "export",
			Usage: "Generate the static gallery",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  outFlag,
					Usage: "output file (default from EXPORT_PATH or index.html)",
				},
				cli.StringFlag{
					Name:  titleFlag,
					Usage: "page title (default from EXPORT_TITLE)",
				},
				cli.BoolFlag{
					Name:  markdownFlag,
					Usage: "write Markdown instead of HTML",
				},
			},
			Action: withRuntime(ctx, runExport),
		},
	}
}

// argText joins all positional arguments so unquoted titles work.
func argText(c *cli.Context, what string) (string, error) {
	s := strings.TrimSpace(strings.Join(c.Args(), " "))
	if s == "" {
		return "", domainerrors.Validationf("%s is required", what)
	}
	return s, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runUsersList(ctx context.Context, rt *runtime, _ *cli.Context) error {
	users, err := rt.users.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		rt.out.Println(u.Username)
	}
	return nil
}

func runUsersCreate(ctx context.Context, rt *runtime, c *cli.Context) error {
	name, err := argText(c, "username")
	if err != nil {
		return err
	}
	u, err := rt.users.CreateUser(ctx, name)
	if err != nil {
		return err
	}
	rt.out.Success(fmt.Sprintf("User '%s' created.", u.Username))
	return nil
}

func runUsersDelete(ctx context.Context, rt *runtime, c *cli.Context) error {
	name, err := argText(c, "username")
	if err != nil {
		return err
	}
	if err := rt.users.DeleteUser(ctx, name); err != nil {
		return err
	}
	rt.out.Success(fmt.Sprintf("User '%s' deleted.", name))
	return nil
}

func runList(ctx context.Context, rt *runtime, c *cli.Context) error {
	session, err := rt.session(ctx)
	if err != nil {
		return err
	}
	movies, err := rt.catalog.Movies(ctx, session)
	if err != nil {
		return err
	}
	return rt.printMovies(c, movies)
}

func runSorted(ctx context.Context, rt *runtime, c *cli.Context) error {
	session, err := rt.session(ctx)
	if err != nil {
		return err
	}
	movies, err := rt.catalog.SortByRating(ctx, session)
	if err != nil {
		return err
	}
	return rt.printMovies(c, movies)
}

func (rt *runtime) printMovies(c *cli.Context, movies []*domain.Movie) error {
	if c.Bool(jsonFlag) {
		if movies == nil {
			movies = []*domain.Movie{}
		}
		return writeJSON(rt.stdout, movies)
	}
	rt.out.Movies(movies)
	return nil
}

func runAdd(ctx context.Context, rt *runtime, c *cli.Context) error {
	session, err := rt.session(ctx)
	if err != nil {
		return err
	}
	title, err := argText(c, "title")
	if err != nil {
		return err
	}

	entry := domain.ManualEntry{Rating: c.Float64(ratingFlag), Year: c.Int(yearFlag)}
	hasEntry := c.IsSet(ratingFlag) && c.IsSet(yearFlag)

	if c.Bool(manualFlag) {
		if !hasEntry {
			return domainerrors.Validation("--manual needs --year and --rating")
		}
		m, err := rt.catalog.AddManual(ctx, session, title, entry)
		if err != nil {
			return err
		}
		rt.out.MovieAdded(m, service.SourceManual)
		return nil
	}

	var fallback service.ManualEntryFunc
	if hasEntry {
		fallback = func(context.Context) (domain.ManualEntry, error) { return entry, nil }
	}

	res, err := rt.catalog.AddMovie(ctx, session, title, fallback)
	if err != nil {
		return err
	}

	if res.LookupErr != nil {
		rt.log.Debug("lookup failed, used flags", "title", title, "error", res.LookupErr)
	}
	rt.out.MovieAdded(res.Movie, res.Source)
	return nil
}

func runDelete(ctx context.Context, rt *runtime, c *cli.Context) error {
	session, err := rt.session(ctx)
	if err != nil {
		return err
	}
	title, err := argText(c, "title")
	if err != nil {
		return err
	}
	if err := rt.catalog.DeleteMovie(ctx, session, title); err != nil {
		return err
	}
	rt.out.Success(fmt.Sprintf("Deleted '%s'.", title))
	return nil
}

func runUpdate(ctx context.Context, rt *runtime, c *cli.Context) error {
	session, err := rt.session(ctx)
	if err != nil {
		return err
	}
	title, err := argText(c, "title")
	if err != nil {
		return err
	}
	if !c.IsSet(ratingFlag) {
		return domainerrors.Validation("--rating is required")
	}
	rating := c.Float64(ratingFlag)
	if err := rt.catalog.UpdateRating(ctx, session, title, rating); err != nil {
		return err
	}
	rt.out.Success(fmt.Sprintf("Updated '%s' to %s.", title, console.FormatRating(rating)))
	return nil
}

func runStats(ctx context.Context, rt *runtime, c *cli.Context) error {
	session, err := rt.session(ctx)
	if err != nil {
		return err
	}
	s, err := rt.catalog.Stats(ctx, session)
	if err != nil {
		return err
	}
	if c.Bool(jsonFlag) {
		return writeJSON(rt.stdout, s)
	}

	rt.out.Stats(s)
	return nil
}

func runRandom(ctx context.Context, rt *runtime, _ *cli.Context) error {
	session, err := rt.session(ctx)
	if err != nil {
		return err
	}
	m, err := rt.catalog.RandomMovie(ctx, session)
	if err != nil {
		return err
	}
	rt.out.RandomMovie(m)
	return nil
}

func runSearch(ctx context.Context, rt *runtime, c *cli.Context) error {
	session, err := rt.session(ctx)
	if err != nil {
		return err
	}
	query, err := argText(c, "query")
	if err != nil {
		return err
	}
	res, err := rt.catalog.Search(ctx, session, query)
	if err != nil {
		return err
	}

	rt.out.SearchResult(res)
	return nil
}

func runExport(ctx context.Context, rt *runtime, c *cli.Context) error {
	session, err := rt.session(ctx)
	if err != nil {
		return err
	}
	movies, err := rt.catalog.Movies(ctx, session)
	if err != nil {
		return err
	}

	path := c.String(outFlag)
	if path == "" {
		path = rt.cfg.Export.OutputPath
	}
	title := c.String(titleFlag)
	if title == "" {
		title = rt.cfg.Export.Title
	}

	render := export.HTML
	if c.Bool(markdownFlag) {
		render = export.Markdown
	}
	err = export.WriteFile(path, func(w io.Writer) error {
		return render(ctx, w, title, movies)
	})
	if err != nil {
		return err
	}

	rt.log.Info("website generated", "path", path, "movies", len(movies))
	rt.out.Success("Website was generated successfully.")
	return nil
}
