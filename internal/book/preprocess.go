package book

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// PreprocessContext is the first element of the pair mdBook pipes to a
// preprocessor: build metadata plus the raw book.toml configuration.
type PreprocessContext struct {
	Root          string          `json:"root"`
	Config        json.RawMessage `json:"config"`
	Renderer      string          `json:"renderer"`
	MdbookVersion string          `json:"mdbook_version"`
}

// ParseInput decodes the "[context, book]" array mdBook writes on the
// preprocessor's standard input.
func ParseInput(r io.Reader) (*PreprocessContext, *Book, error) {
	var input []json.RawMessage

	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, nil, errors.Wrap(err, "could not decode preprocessor input")
	}

	if len(input) != 2 {
		return nil, nil, errors.Errorf("unexpected preprocessor input: expected 2 elements, got %d", len(input))
	}

	ctx := &PreprocessContext{}
	if err := json.Unmarshal(input[0], ctx); err != nil {
		return nil, nil, errors.Wrap(err, "could not decode preprocess context")
	}

	book := &Book{}
	if err := json.Unmarshal(input[1], book); err != nil {
		return nil, nil, errors.Wrap(err, "could not decode book")
	}

	return ctx, book, nil
}

// Write encodes the transformed book for mdBook to read back. HTML
// escaping is disabled so the injected markup crosses the pipe verbatim.
func Write(w io.Writer, book *Book) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(book); err != nil {
		return errors.Wrap(err, "could not encode book")
	}

	return nil
}
