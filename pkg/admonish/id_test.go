package admonish

import "testing"

func TestIDAllocator(t *testing.T) {
	ids := NewIDAllocator()

	type allocation struct {
		Slug     string
		Expected string
	}

	allocations := []allocation{
		{Slug: "note", Expected: "admonition-note"},
		{Slug: "note", Expected: "admonition-note-1"},
		{Slug: "note", Expected: "admonition-note-2"},
		{Slug: "warning", Expected: "admonition-warning"},
		{Slug: "note", Expected: "admonition-note-3"},
		{Slug: "", Expected: "admonition-default"},
		{Slug: "", Expected: "admonition-default-1"},
	}

	for _, a := range allocations {
		if e, g := a.Expected, ids.Allocate(a.Slug); e != g {
			t.Errorf("Allocate(%q): expected '%v', got '%v'", a.Slug, e, g)
		}
	}
}

func TestIDAllocatorSkipsIssuedIds(t *testing.T) {
	ids := NewIDAllocator()

	if e, g := "admonition-note", ids.Allocate("note"); e != g {
		t.Errorf("Allocate(\"note\"): expected '%v', got '%v'", e, g)
	}

	// A title that slugifies to "note-1" takes the suffixed id first.
	if e, g := "admonition-note-1", ids.Allocate("note-1"); e != g {
		t.Errorf("Allocate(\"note-1\"): expected '%v', got '%v'", e, g)
	}

	if e, g := "admonition-note-2", ids.Allocate("note"); e != g {
		t.Errorf("Allocate(\"note\"): expected '%v', got '%v'", e, g)
	}
}

func TestSlugify(t *testing.T) {
	type testCase struct {
		Title    string
		Expected string
	}

	testCases := []testCase{
		{Title: "My note", Expected: "my-note"},
		{Title: "don't", Expected: "dont"},
		{Title: "Article Heading", Expected: "article-heading"},
		{Title: "", Expected: "default"},
		{Title: "!!!", Expected: "default"},
		{Title: "  spaced   out  ", Expected: "spaced-out"},
		{Title: "keep_underscores-and-hyphens", Expected: "keep_underscores-and-hyphens"},
		{Title: "Café au lait", Expected: "café-au-lait"},
		{Title: "a -- b", Expected: "a-b"},
		{Title: "100% sure", Expected: "100-sure"},
	}

	for _, tc := range testCases {
		t.Run(tc.Title, func(t *testing.T) {
			if e, g := tc.Expected, slugify(tc.Title); e != g {
				t.Errorf("slugify(%q): expected '%v', got '%v'", tc.Title, e, g)
			}
		})
	}
}
