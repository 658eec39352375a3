package assets

import _ "embed"

// Version ties a book's installed stylesheet to this binary. Preprocessing
// for the html renderer refuses to run when book.toml records another
// version.
const Version = "1.0.0"

// CSSFilename is the default name of the stylesheet written into the book
// directory by the install command.
const CSSFilename = "mdbook-admonish.css"

//go:embed mdbook-admonish.css
var CSS []byte
