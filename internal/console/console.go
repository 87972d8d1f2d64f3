// Package console implements the interactive menu loop.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/filmshelf/filmshelf/internal/domain"
	domainerrors "github.com/filmshelf/filmshelf/internal/errors"
	"github.com/filmshelf/filmshelf/internal/export"
	"github.com/filmshelf/filmshelf/internal/service"
)

// Catalog is the subset of the catalog service the console drives.
type Catalog interface {
	ListMovies(ctx context.Context, session domain.Session) (domain.Catalog, error)
	Movies(ctx context.Context, session domain.Session) ([]*domain.Movie, error)
	AddMovie(ctx context.Context, session domain.Session, title string, fallback service.ManualEntryFunc) (*service.AddResult, error)
	DeleteMovie(ctx context.Context, session domain.Session, title string) error
	UpdateRating(ctx context.Context, session domain.Session, title string, rating float64) error
	Stats(ctx context.Context, session domain.Session) (*domain.RatingStats, error)
	RandomMovie(ctx context.Context, session domain.Session) (*domain.Movie, error)
	Search(ctx context.Context, session domain.Session, query string) (*service.SearchResult, error)
	SortByRating(ctx context.Context, session domain.Session) ([]*domain.Movie, error)
}

// Users is the subset of the user service the console drives.
type Users interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// Options configures a Console.
type Options struct {
	In          io.Reader
	Out         io.Writer
	Color       bool
	ExportPath  string
	ExportTitle string
	Logger      *slog.Logger
}

// Console is one interactive session. It owns the active user.
type Console struct {
	catalog Catalog
	users   Users
	session domain.Session

	out    *Printer
	prompt *Prompter

	exportPath  string
	exportTitle string
	logger      *slog.Logger
}

// New creates a console.
func New(catalog Catalog, users Users, opts Options) *Console {
	out := NewPrinter(opts.Out, opts.Color)
	if opts.ExportPath == "" {
		opts.ExportPath = export.DefaultOutputPath
	}
	if opts.ExportTitle == "" {
		opts.ExportTitle = export.DefaultTitle
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Console{
		catalog:     catalog,
		users:       users,
		out:         out,
		prompt:      NewPrompter(opts.In, out),
		exportPath:  opts.ExportPath,
		exportTitle: opts.ExportTitle,
		logger:      opts.Logger,
	}
}

// Session returns the active user.
func (c *Console) Session() domain.Session {
	return c.session
}

// Run shows the menu until the user exits or input ends. A session that is
// already valid skips the user selection screen. Command failures are
// printed and the loop continues. Cancelling ctx ends the loop with
// ctx.Err(), including while a prompt is waiting for input.
func (c *Console) Run(ctx context.Context, session domain.Session) error {
	c.session = session
	if !c.session.Valid() {
		if err := c.selectUser(ctx); err != nil {
			return quitIsNil(err)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu()
		choice, err := c.prompt.Line(ctx, fmt.Sprintf("Enter choice 0-%d ", int(cmdCount)-1))
		if err != nil {
			return quitIsNil(err)
		}

		cmd, ok := ParseCommand(choice)
		if !ok {
			c.out.Error("Invalid choice.")
			continue
		}
		if cmd == CmdExit {
			c.out.Println("Bye!")
			return nil
		}

		c.logger.Debug("dispatch command", "command", cmd.String(), "user_id", c.session.UserID)
		if err := handlers[cmd](c, ctx); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			c.printError(err)
		}
	}
}

func (c *Console) printMenu() {
	c.out.Header("My Movies Database")
	c.out.Header(fmt.Sprintf("Menu (user: %s)", c.session.Username))
	for cmd := CmdExit; cmd < cmdCount; cmd++ {
		c.out.Printf("%2d. %s\n", int(cmd), cmd)
	}
}

// printError reports a command failure without ending the loop.
func (c *Console) printError(err error) {
	var de *domainerrors.Error
	if errors.As(err, &de) && de.Code != domainerrors.CodeInternal {
		c.out.Error("Error: " + err.Error())
		return
	}
	c.logger.Error("command failed", "error", err)
	c.out.Error("Error: something went wrong: " + err.Error())
}

func quitIsNil(err error) error {
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}
