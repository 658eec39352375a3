// Package admonish rewrites ```admonish fenced code blocks inside markdown
// documents into styled admonition (callout) blocks.
package admonish

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// OnFailure selects what happens when a directive header cannot be parsed.
type OnFailure string

const (
	// OnFailureContinue renders the failure as a "bug" admonition in place
	// of the block and keeps processing the document.
	OnFailureContinue OnFailure = "continue"
	// OnFailureBail aborts the whole document pass on the first failure.
	OnFailureBail OnFailure = "bail"
)

// ParseOnFailure maps a config value to its failure mode. Unknown values
// mean OnFailureContinue.
func ParseOnFailure(value string) OnFailure {
	if OnFailure(strings.ToLower(value)) == OnFailureBail {
		return OnFailureBail
	}

	return OnFailureContinue
}

// RenderTextMode selects the output shape of a rewritten block.
type RenderTextMode string

const (
	RenderTextModeHTML  RenderTextMode = "html"
	RenderTextModeStrip RenderTextMode = "strip"
)

// Defaults are build-wide fallbacks applied to blocks that omit the
// corresponding field. A nil Title is distinct from an empty one: the
// empty string suppresses the title block entirely.
type Defaults struct {
	Title       *string `json:"title" toml:"title"`
	Collapsible bool    `json:"collapsible" toml:"collapsible"`
}

// Admonition is the resolved form of one directive: what to render, with
// defaults already applied. Title holds raw markdown; the empty string
// means no title block.
type Admonition struct {
	Kind        Kind
	Title       string
	Classes     []string
	Collapsible bool
	Body        string
}

type Options struct {
	OnFailure OnFailure
	Defaults  Defaults
	Mode      RenderTextMode
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		OnFailure: OnFailureContinue,
		Mode:      RenderTextModeHTML,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithOnFailure(mode OnFailure) OptionFunc {
	return func(opts *Options) {
		opts.OnFailure = mode
	}
}

func WithDefaults(defaults Defaults) OptionFunc {
	return func(opts *Options) {
		opts.Defaults = defaults
	}
}

func WithRenderTextMode(mode RenderTextMode) OptionFunc {
	return func(opts *Options) {
		opts.Mode = mode
	}
}

// Preprocess rewrites every admonish block of the document and returns the
// new text. Documents without admonish blocks come back unchanged. Each
// call owns a fresh id allocator, so ids are stable for a given document
// but independent across documents.
func Preprocess(content string, funcs ...OptionFunc) (string, error) {
	opts := NewOptions(funcs...)

	source := []byte(content)

	blocks, err := scan(source)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if len(blocks) == 0 {
		return content, nil
	}

	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].start < blocks[j].start
	})

	ids := NewIDAllocator()

	var sb strings.Builder

	cursor := 0
	for i := range blocks {
		b := &blocks[i]

		replacement, err := renderBlock(source, b, ids, opts)
		if err != nil {
			return "", errors.WithStack(err)
		}

		sb.Write(source[cursor:b.start])
		sb.WriteString(replacement)

		cursor = b.end
	}

	sb.Write(source[cursor:])

	return sb.String(), nil
}

// renderBlock parses one block's directive and renders it, applying the
// failure policy when the directive is malformed.
func renderBlock(source []byte, b *block, ids *IDAllocator, opts *Options) (string, error) {
	adm, err := parseDirective(b.header, opts.Defaults)
	if err != nil {
		original := string(source[b.start:b.end])

		if opts.OnFailure == OnFailureBail {
			// The message ends with the offending block; the parse detail
			// only surfaces in continue mode's rendered error admonition.
			return "", errors.Errorf("Error processing admonition, bailing:\n%s", original)
		}

		adm = errorAdmonition(err, original)
	} else {
		adm.Body = b.body
	}

	if opts.Mode == RenderTextModeStrip {
		return adm.Strip(), nil
	}

	plain, err := plainTitleText(adm.Title)
	if err != nil {
		return "", errors.WithStack(err)
	}

	html, err := adm.HTML(ids.Allocate(slugify(plain)))
	if err != nil {
		return "", errors.WithStack(err)
	}

	return html, nil
}

// errorAdmonition wraps a directive failure into a renderable "bug" block
// reproducing the original source, fenced with a backtick run longer than
// any it contains.
func errorAdmonition(err error, original string) *Admonition {
	fence := strings.Repeat("`", max(longestRun(original, '`')+1, 4))

	var body strings.Builder

	fmt.Fprintf(&body, "Failed with:\n\n```log\n%s\n```\n\n", err.Error())
	fmt.Fprintf(&body, "Original markdown input:\n\n%smarkdown\n%s\n%s\n", fence, original, fence)

	return &Admonition{
		Kind:  KindBug,
		Title: "Error rendering admonishment",
		Body:  body.String(),
	}
}

func longestRun(s string, b byte) int {
	longest, current := 0, 0

	for i := 0; i < len(s); i++ {
		if s[i] != b {
			current = 0
			continue
		}

		current++
		if current > longest {
			longest = current
		}
	}

	return longest
}
