package install

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/bornholm/mdbook-admonish/internal/assets"
	"github.com/bornholm/mdbook-admonish/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

const flagCSSDir = "css-dir"

func Command() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Configure the book in the given directory to use mdbook-admonish",
		ArgsUsage: "[DIR]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagCSSDir,
				Usage: "Write the stylesheet into this directory, relative to the book directory",
			},
		},
		Action: func(cCtx *cli.Context) error {
			dir := cCtx.Args().First()
			if dir == "" {
				dir = "."
			}

			return errors.WithStack(Install(cCtx.Context, afero.NewOsFs(), dir, cCtx.String(flagCSSDir)))
		},
	}
}

// Install writes the embedded stylesheet into the book directory and
// patches book.toml so mdBook runs the preprocessor and serves the
// stylesheet. Re-running updates the stylesheet and the recorded
// assets_version while leaving unrelated configuration untouched.
func Install(ctx context.Context, fs afero.Fs, dir string, cssDir string) error {
	tomlPath := filepath.Join(dir, "book.toml")

	data, err := afero.ReadFile(fs, tomlPath)
	if err != nil {
		return errors.Wrapf(err, "could not read '%s', is '%s' an mdBook directory?", tomlPath, dir)
	}

	conf, err := config.FromBookTOML(data)
	if err != nil {
		return errors.WithStack(err)
	}

	// Flag wins over a previously recorded location. Paths are stored with
	// forward slashes, the form book.toml expects.
	cssPath := conf.CSSFilePath
	if cssDir != "" {
		cssPath = filepath.ToSlash(filepath.Join(cssDir, assets.CSSFilename))
	}
	if cssPath == "" {
		cssPath = assets.CSSFilename
	}

	target := filepath.Join(dir, filepath.FromSlash(cssPath))

	if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrapf(err, "could not create directory '%s'", filepath.Dir(target))
	}

	if err := afero.WriteFile(fs, target, assets.CSS, 0o644); err != nil {
		return errors.Wrapf(err, "could not write '%s'", target)
	}

	slog.InfoContext(ctx, "stylesheet written", slog.String("path", target))

	patched := patchBookTOML(string(data), cssPath)

	if err := afero.WriteFile(fs, tomlPath, []byte(patched), 0o644); err != nil {
		return errors.Wrapf(err, "could not write '%s'", tomlPath)
	}

	slog.InfoContext(ctx, "book.toml updated",
		slog.String("path", tomlPath),
		slog.String("assetsVersion", assets.Version),
	)

	return nil
}
