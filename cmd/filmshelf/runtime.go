package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/samber/do/v2"
	"github.com/urfave/cli"

	"github.com/filmshelf/filmshelf/internal/config"
	"github.com/filmshelf/filmshelf/internal/console"
	"github.com/filmshelf/filmshelf/internal/di"
	"github.com/filmshelf/filmshelf/internal/domain"
	domainerrors "github.com/filmshelf/filmshelf/internal/errors"
	"github.com/filmshelf/filmshelf/internal/logger"
	"github.com/filmshelf/filmshelf/internal/service"
)

// runtime holds the wired services for a single command invocation.
type runtime struct {
	cfg     *config.Config
	log     *logger.Logger
	users   *service.UserService
	catalog *service.CatalogService
	out     *console.Printer
	stdout  io.Writer
}

type action func(ctx context.Context, rt *runtime, c *cli.Context) error

// withRuntime builds the DI container from the global flags, runs fn and
// shuts the container down again.
func withRuntime(ctx context.Context, fn action) func(c *cli.Context) error {
	return func(c *cli.Context) error {
		injector := di.NewContainer(overrides(c))
		if err := di.Bootstrap(injector); err != nil {
			// Config may be what failed, so the container logger can be missing.
			log, logErr := do.Invoke[*logger.Logger](injector)
			if logErr != nil {
				log = logger.New(logger.Config{})
			}
			shutdownContainer(injector, log)
			return err
		}

		cfg := do.MustInvoke[*config.Config](injector)
		log := do.MustInvoke[*logger.Logger](injector)
		defer shutdownContainer(injector, log)

		rt := &runtime{
			cfg:     cfg,
			log:     log,
			users:   do.MustInvoke[*service.UserService](injector),
			catalog: do.MustInvoke[*service.CatalogService](injector),
			out:     console.NewPrinter(os.Stdout, useColor(cfg)),
			stdout:  os.Stdout,
		}
		return fn(ctx, rt, c)
	}
}

// shutdownContainer stops every service in injector and logs what failed.
func shutdownContainer(injector *do.RootScope, log *logger.Logger) {
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}
}

func overrides(c *cli.Context) config.Overrides {
	return config.Overrides{
		Environment: c.GlobalString(envFlag),
		LogLevel:    c.GlobalString(logLevelFlag),
		DBPath:      c.GlobalString(dbPathFlag),
		EnvFile:     c.GlobalString(envFileFlag),
		OMDbAPIKey:  c.GlobalString(omdbAPIKeyFlag),
		OMDbURL:     c.GlobalString(omdbURLFlag),
		OMDbTimeout: c.GlobalString(omdbTimeoutFlag),
		User:        c.GlobalString(userFlag),
		NoColor:     c.GlobalBool(noColorFlag),
	}
}

func useColor(cfg *config.Config) bool {
	return !cfg.Console.NoColor && isatty.IsTerminal(os.Stdout.Fd())
}

// session resolves the active user for non-interactive commands.
func (rt *runtime) session(ctx context.Context) (domain.Session, error) {
	name := rt.cfg.Console.DefaultUser
	if name == "" {
		return domain.Session{}, domainerrors.Validation("no user selected: pass --user or set FILMSHELF_USER")
	}
	return rt.users.SelectUser(ctx, name)
}

func runShell(ctx context.Context, rt *runtime, _ *cli.Context) error {
	var session domain.Session
	if rt.cfg.Console.DefaultUser != "" {
		s, err := rt.users.SelectUser(ctx, rt.cfg.Console.DefaultUser)
		if err != nil {
			return err
		}
		session = s
	}

	con := console.New(rt.catalog, rt.users, console.Options{
		In:          os.Stdin,
		Out:         rt.stdout,
		Color:       useColor(rt.cfg),
		ExportPath:  rt.cfg.Export.OutputPath,
		ExportTitle: rt.cfg.Export.Title,
		Logger:      rt.log.Logger,
	})
	// An interrupt ends the shell like typing exit does.
	if err := con.Run(ctx, session); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
