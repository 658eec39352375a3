package command

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bornholm/mdbook-admonish/internal/assets"
	"github.com/bornholm/mdbook-admonish/internal/book"
	"github.com/bornholm/mdbook-admonish/internal/config"
	"github.com/bornholm/mdbook-admonish/internal/log"
	"github.com/bornholm/mdbook-admonish/pkg/admonish"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const maxConcurrentChapters = 4

// Preprocess reads the "[context, book]" pair mdBook pipes on stdin,
// rewrites every chapter and writes the transformed book back on stdout.
func Preprocess(cCtx *cli.Context) error {
	ctx := cCtx.Context

	preprocessCtx, b, err := book.ParseInput(cCtx.App.Reader)
	if err != nil {
		return errors.WithStack(err)
	}

	conf, err := config.FromContext(preprocessCtx.Config)
	if err != nil {
		return errors.WithStack(err)
	}

	mode := conf.RenderMode(preprocessCtx.Renderer)

	ctx = log.WithAttrs(ctx, slog.String("renderer", preprocessCtx.Renderer))

	slog.DebugContext(ctx, "preprocessing book",
		slog.String("mdbookVersion", preprocessCtx.MdbookVersion),
		slog.String("renderMode", string(mode)),
	)

	if mode == admonish.RenderTextModeHTML {
		if err := checkAssetsVersion(conf); err != nil {
			return errors.WithStack(err)
		}
	}

	options := []admonish.OptionFunc{
		admonish.WithOnFailure(conf.FailureMode()),
		admonish.WithDefaults(conf.Default),
		admonish.WithRenderTextMode(mode),
	}

	if err := preprocessChapters(ctx, b.Chapters(), options); err != nil {
		return errors.WithStack(err)
	}

	if err := book.Write(cCtx.App.Writer, b); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// preprocessChapters fans the chapters out over a bounded pool. Chapters
// are independent, so under bail mode the first failure in reading order
// wins and the book is never written.
func preprocessChapters(ctx context.Context, chapters []*book.Chapter, options []admonish.OptionFunc) error {
	var wg sync.WaitGroup

	wg.Add(len(chapters))

	semaphore := make(chan struct{}, maxConcurrentChapters)
	errs := make([]error, len(chapters))

	for i, chapter := range chapters {
		go func(i int, chapter *book.Chapter) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() {
				<-semaphore
			}()

			chapterCtx := log.WithAttrs(ctx, slog.String("chapter", chapter.Name))

			slog.DebugContext(chapterCtx, "preprocessing chapter")

			content, err := admonish.Preprocess(chapter.Content, options...)
			if err != nil {
				errs[i] = errors.Wrapf(err, "could not preprocess chapter '%s'", chapter.Name)
				return
			}

			chapter.Content = content
		}(i, chapter)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

func checkAssetsVersion(conf *config.Config) error {
	if conf.AssetsVersion == assets.Version {
		return nil
	}

	return errors.Errorf(
		"book assets_version '%s' does not match the required version '%s', run 'mdbook-admonish install' to update the stylesheet and book.toml",
		conf.AssetsVersion, assets.Version,
	)
}
