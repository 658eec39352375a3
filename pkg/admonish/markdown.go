package admonish

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// newMarkdown returns the engine used for scanning documents and rendering
// titles. The extension set is part of the output contract: tables,
// footnotes, strikethrough and task lists, nothing else, so that constructs
// like a leading "---" block reach the scanner as plain text.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Footnote,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// renderInlineMarkdown renders a title to an HTML fragment, unwrapping the
// paragraph element goldmark adds around single-line input.
func renderInlineMarkdown(source string) (string, error) {
	md := newMarkdown()

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", errors.WithStack(err)
	}

	fragment := strings.TrimSpace(buf.String())

	if strings.HasPrefix(fragment, "<p>") && strings.HasSuffix(fragment, "</p>") && strings.Count(fragment, "<p>") == 1 {
		fragment = strings.TrimSuffix(strings.TrimPrefix(fragment, "<p>"), "</p>")
	}

	return fragment, nil
}

// plainTitleText extracts the text content of a title, dropping markdown
// markup and raw HTML. Used for slug generation.
func plainTitleText(source string) (string, error) {
	md := newMarkdown()

	src := []byte(source)
	root := md.Parser().Parse(text.NewReader(src))

	var sb strings.Builder

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch el := n.(type) {
		case *ast.Text:
			sb.Write(el.Segment.Value(src))
		case *ast.String:
			sb.Write(el.Value)
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	return sb.String(), nil
}
