package command

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/bornholm/mdbook-admonish/internal/build"
	"github.com/bornholm/mdbook-admonish/internal/config"
	"github.com/bornholm/mdbook-admonish/internal/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Main(name string, usage string, commands ...*cli.Command) {
	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Commands: commands,
		Version:  build.LongVersion,
		// Running without a subcommand is the preprocessor protocol:
		// mdBook pipes the book on stdin and reads it back on stdout.
		Action: Preprocess,
		Before: func(ctx *cli.Context) error {
			envConf, err := config.ParseEnv()
			if err != nil {
				return errors.WithStack(err)
			}

			logLevel := ctx.String("log-level")
			slogLevel := slog.LevelWarn

			switch logLevel {
			case "debug":
				slogLevel = slog.LevelDebug
			case "info":
				slogLevel = slog.LevelInfo
			case "warn":
				slogLevel = slog.LevelWarn
			case "error":
				slogLevel = slog.LevelError
			}

			options := &slog.HandlerOptions{
				Level:     slogLevel,
				AddSource: true,
			}

			// Logs go to stderr, stdout belongs to the transformed book.
			var handler slog.Handler = slog.NewTextHandler(os.Stderr, options)
			if envConf.LogFormat == "json" {
				handler = slog.NewJSONHandler(os.Stderr, options)
			}

			slog.SetDefault(slog.New(log.ContextHandler{Handler: handler}))

			return nil
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Value:   false,
				EnvVars: []string{"MDBOOK_ADMONISH_DEBUG"},
				Usage:   "Toggle debug mode",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"MDBOOK_ADMONISH_LOG_LEVEL"},
				Usage:   "Set logging level",
				Value:   "warn",
			},
		},
	}

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}

		debug := ctx.Bool("debug")

		if !debug {
			slog.ErrorContext(ctx.Context, err.Error())
		} else {
			slog.ErrorContext(ctx.Context, fmt.Sprintf("%+v", err))
		}
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
