package admonish

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	idPrefix    = "admonition-"
	defaultSlug = "default"
)

// IDAllocator hands out anchor ids for one document pass. Ids derived from
// the same slug get numeric suffixes in order of encounter, so rendering a
// document twice yields identical ids.
type IDAllocator struct {
	counters map[string]int
	issued   map[string]struct{}
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{
		counters: make(map[string]int),
		issued:   make(map[string]struct{}),
	}
}

// Allocate returns the anchor id for the given slug: "admonition-<slug>" on
// first use, then "admonition-<slug>-1", "admonition-<slug>-2", and so on.
// Ids already handed out for another slug are skipped over.
func (a *IDAllocator) Allocate(slug string) string {
	if slug == "" {
		slug = defaultSlug
	}

	for {
		count := a.counters[slug]
		a.counters[slug]++

		id := idPrefix + slug
		if count > 0 {
			id = fmt.Sprintf("%s%s-%d", idPrefix, slug, count)
		}

		if _, exists := a.issued[id]; exists {
			continue
		}

		a.issued[id] = struct{}{}

		return id
	}
}

// slugify normalizes a plain text title into an id-safe slug: lowercased,
// whitespace mapped to hyphens, runes other than letters, digits, '-' and
// '_' dropped, hyphen runs collapsed and trimmed. An empty result becomes
// the literal slug "default".
func slugify(title string) string {
	var sb strings.Builder

	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '_':
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune('-')
		}
	}

	slug := sb.String()

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	slug = strings.Trim(slug, "-")

	if slug == "" {
		return defaultSlug
	}

	return slug
}
