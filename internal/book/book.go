package book

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Book mirrors mdBook's serialized book: a flat list of top level items,
// each chapter carrying its own sub items.
type Book struct {
	Sections []Item `json:"sections"`

	// Echoed back verbatim so newer mdBook fields survive the round trip.
	NonExhaustive json.RawMessage `json:"__non_exhaustive,omitempty"`
}

func (b Book) MarshalJSON() ([]byte, error) {
	type alias Book

	a := alias(b)

	// mdBook decodes sections as a sequence, never null.
	if a.Sections == nil {
		a.Sections = []Item{}
	}

	return marshalNoEscape(a)
}

// marshalNoEscape encodes v without HTML escaping. Bytes returned by a
// MarshalJSON method are embedded verbatim by outer encoders, so escaping
// has to stay off at every nesting level, not just on the top level
// encoder.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(v); err != nil {
		return nil, errors.WithStack(err)
	}

	// Encode terminates the value with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Chapters returns a pointer to every chapter of the book, depth first, in
// reading order.
func (b *Book) Chapters() []*Chapter {
	chapters := make([]*Chapter, 0)

	var collect func(items []Item)
	collect = func(items []Item) {
		for i := range items {
			chapter := items[i].Chapter
			if chapter == nil {
				continue
			}

			chapters = append(chapters, chapter)

			collect(chapter.SubItems)
		}
	}

	collect(b.Sections)

	return chapters
}

// Item is mdBook's externally tagged BookItem enum: a chapter, a part
// title or a draw-a-line separator. Exactly one of the fields is set.
type Item struct {
	Chapter   *Chapter
	PartTitle *string
	Separator bool
}

func (i Item) MarshalJSON() ([]byte, error) {
	switch {
	case i.Chapter != nil:
		return marshalNoEscape(map[string]*Chapter{"Chapter": i.Chapter})
	case i.PartTitle != nil:
		return marshalNoEscape(map[string]string{"PartTitle": *i.PartTitle})
	case i.Separator:
		return marshalNoEscape("Separator")
	default:
		return nil, errors.New("could not encode empty book item")
	}
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != "Separator" {
			return errors.Errorf("unexpected book item '%s'", tag)
		}

		i.Separator = true

		return nil
	}

	var variant struct {
		Chapter   *Chapter `json:"Chapter"`
		PartTitle *string  `json:"PartTitle"`
	}

	if err := json.Unmarshal(data, &variant); err != nil {
		return errors.Wrap(err, "could not decode book item")
	}

	switch {
	case variant.Chapter != nil:
		i.Chapter = variant.Chapter
	case variant.PartTitle != nil:
		i.PartTitle = variant.PartTitle
	default:
		return errors.New("could not decode book item: unknown variant")
	}

	return nil
}

// Chapter is a single markdown document of the book. Number is nil for
// draft and unnumbered chapters, Path and SourcePath are nil for drafts.
type Chapter struct {
	Name        string   `json:"name"`
	Content     string   `json:"content"`
	Number      []uint32 `json:"number"`
	SubItems    []Item   `json:"sub_items"`
	Path        *string  `json:"path"`
	SourcePath  *string  `json:"source_path"`
	ParentNames []string `json:"parent_names"`
}

func (c Chapter) MarshalJSON() ([]byte, error) {
	type alias Chapter

	a := alias(c)

	// mdBook decodes both as sequences, never null. Number stays nullable.
	if a.SubItems == nil {
		a.SubItems = []Item{}
	}
	if a.ParentNames == nil {
		a.ParentNames = []string{}
	}

	return marshalNoEscape(a)
}

var (
	_ json.Marshaler   = Book{}
	_ json.Marshaler   = Item{}
	_ json.Unmarshaler = &Item{}
	_ json.Marshaler   = Chapter{}
)
