package command

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// SupportsCommand answers mdBook's capability probe. Every renderer is
// supported: the html renderer gets the full markup, the others degrade to
// the stripped body.
func SupportsCommand() *cli.Command {
	return &cli.Command{
		Name:      "supports",
		Usage:     "Report whether the given mdBook renderer is supported",
		ArgsUsage: "RENDERER",
		Action: func(cCtx *cli.Context) error {
			renderer := cCtx.Args().First()
			if renderer == "" {
				return errors.New("missing renderer argument")
			}

			slog.DebugContext(cCtx.Context, "renderer supported", slog.String("renderer", renderer))

			return nil
		},
	}
}
