package admonish

import (
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// instanceConfig is the raw result of parsing a directive header, before
// defaults are applied. Pointer fields distinguish absent from explicitly
// empty.
type instanceConfig struct {
	kindToken   string
	title       *string
	classes     []string
	collapsible *bool
}

// parseDirective parses the header text following the trigger keyword and
// resolves it against the given defaults. The header grammar is ambiguous
// by construction: an unescaped '=' outside double quotes selects the
// attribute form, anything else the legacy positional form.
func parseDirective(header string, defaults Defaults) (*Admonition, error) {
	header = strings.TrimSpace(header)

	var (
		cfg *instanceConfig
		err error
	)

	switch {
	case header == "":
		cfg = &instanceConfig{}
	case hasUnescapedEquals(header):
		cfg, err = parseAttributes(header)
	default:
		cfg, err = parseLegacy(header)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return cfg.resolve(defaults), nil
}

// resolve applies the external defaults. An unrecognized kind token falls
// back to KindNote and takes that kind's title; the configured default
// title only applies when the kind token is absent altogether.
func (c *instanceConfig) resolve(defaults Defaults) *Admonition {
	kind, known := ParseKind(c.kindToken)

	var title string

	switch {
	case c.title != nil:
		title = *c.title
	case known:
		title = kind.DefaultTitle()
	case c.kindToken == "" && defaults.Title != nil:
		title = *defaults.Title
	default:
		title = KindNote.DefaultTitle()
	}

	collapsible := defaults.Collapsible
	if c.collapsible != nil {
		collapsible = *c.collapsible
	}

	return &Admonition{
		Kind:        kind,
		Title:       title,
		Classes:     c.classes,
		Collapsible: collapsible,
	}
}

// hasUnescapedEquals reports whether the header contains a '=' outside
// double quotes, the probe deciding between the two grammars.
func hasUnescapedEquals(header string) bool {
	inQuotes := false
	escaped := false

	for _, r := range header {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case r == '=' && !inQuotes:
			return true
		}
	}

	return false
}

// parseAttributes parses the key="value" form. An optional leading token
// without '=' is the kind token; the remaining tokens are decoded as one
// TOML document, one pair per line, so syntax errors come back with line
// and column information.
func parseAttributes(header string) (*instanceConfig, error) {
	tokens := splitQuoted(header)

	cfg := &instanceConfig{}

	if len(tokens) > 0 && !hasUnescapedEquals(tokens[0]) {
		cfg.kindToken = tokens[0]
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		return cfg, nil
	}

	var attrs struct {
		Class       *string `toml:"class"`
		Title       *string `toml:"title"`
		Collapsible *bool   `toml:"collapsible"`
	}

	meta, err := toml.Decode(strings.Join(tokens, "\n"), &attrs)
	if err != nil {
		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			return nil, directiveErrorf("TOML parsing error: %s", parseErr.ErrorWithPosition())
		}

		return nil, directiveErrorf("TOML parsing error: %s", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return nil, directiveErrorf("unknown admonition config fields: %s", strings.Join(keys, ", "))
	}

	if attrs.Class != nil {
		if classes := strings.Fields(*attrs.Class); len(classes) > 0 {
			cfg.classes = classes
		}
	}

	cfg.title = attrs.Title
	cfg.collapsible = attrs.Collapsible

	return cfg, nil
}

// splitQuoted splits the header on whitespace, keeping double-quoted
// sections (and their escapes) intact inside tokens.
func splitQuoted(header string) []string {
	tokens := make([]string, 0, 4)

	var current strings.Builder

	inQuotes := false
	escaped := false

	for _, r := range header {
		if !escaped && !inQuotes && unicode.IsSpace(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// parseLegacy parses the positional form: an optional kind token with
// dot-separated extra classnames, then an optional double-quoted title.
func parseLegacy(header string) (*instanceConfig, error) {
	end := len(header)
	for i, r := range header {
		if unicode.IsSpace(r) || r == '"' {
			end = i
			break
		}
	}

	cfg := &instanceConfig{}

	segments := strings.Split(header[:end], ".")

	cfg.kindToken = segments[0]

	for _, segment := range segments[1:] {
		if segment == "" {
			continue
		}

		cfg.classes = append(cfg.classes, segment)
	}

	rest := strings.TrimLeftFunc(header[end:], unicode.IsSpace)
	if rest == "" {
		return cfg, nil
	}

	title, err := parseQuotedTitle(rest)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg.title = &title

	return cfg, nil
}

// parseQuotedTitle parses a double-quoted title. The title runs from the
// first double quote to the last one on the header, so embedded quotes
// need no escaping; any leftover \" is unescaped. Only whitespace may
// follow the closing quote.
func parseQuotedTitle(rest string) (string, error) {
	if rest[0] != '"' {
		return "", directiveErrorf("unexpected text %q after admonition directive", rest)
	}

	body := rest[1:]

	closing := strings.LastIndexByte(body, '"')
	if closing < 0 {
		return "", directiveErrorf("unterminated title %s in admonition directive", rest)
	}

	if trailing := strings.TrimSpace(body[closing+1:]); trailing != "" {
		return "", directiveErrorf("unexpected text %q after admonition title", trailing)
	}

	return strings.ReplaceAll(body[:closing], `\"`, `"`), nil
}
