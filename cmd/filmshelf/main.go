// Package main provides the entry point for the filmshelf command-line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	domainerrors "github.com/filmshelf/filmshelf/internal/errors"
)

const (
	dbPathFlag      = "db-path"
	logLevelFlag    = "log-level"
	envFlag         = "env"
	envFileFlag     = "env-file"
	omdbAPIKeyFlag  = "omdb-api-key"
	omdbURLFlag     = "omdb-url"
	omdbTimeoutFlag = "omdb-timeout"
	userFlag        = "user"
	noColorFlag     = "no-color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(ctx)
	if err := app.Run(os.Args); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(domainerrors.ExitCode(err))
	}
}

func newApp(ctx context.Context) *cli.App {
	app := cli.NewApp()
	app.Name = "filmshelf"
	app.Usage = "Keep a personal movie catalog"
	app.HideVersion = true
	app.Flags = globalFlags()
	app.Commands = commands(ctx)
	app.Action = withRuntime(ctx, runShell)
	return app
}

// globalFlags are accepted before any command. Environment variables and
// the .env file are resolved by the config package, so flags carry no
// EnvVar of their own.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  dbPathFlag,
			Usage: "SQLite database file (default ~/.filmshelf/movies.db)",
		},
		cli.StringFlag{
			Name:  logLevelFlag,
			Usage: "log level: debug, info, warn or error",
		},
		cli.StringFlag{
			Name:  envFlag,
			Usage: "environment: development, staging or production",
		},
		cli.StringFlag{
			Name:  envFileFlag,
			Usage: "path of the .env file",
			Value: ".env",
		},
		cli.StringFlag{
			Name:  omdbAPIKeyFlag,
			Usage: "OMDb API key",
		},
		cli.StringFlag{
			Name:  omdbURLFlag,
			Usage: "OMDb API base url",
		},
		cli.StringFlag{
			Name:  omdbTimeoutFlag,
			Usage: "OMDb request timeout, e.g. 10s",
		},
		cli.StringFlag{
			Name:  userFlag,
			Usage: "active user; skips the selection screen",
		},
		cli.BoolFlag{
			Name:  noColorFlag,
			Usage: "disable colored output",
		},
	}
}
