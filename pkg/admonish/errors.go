package admonish

import "fmt"

// DirectiveError reports a malformed directive header. Its message is meant
// for the book author: under OnFailureContinue it ends up rendered inside
// the failing block.
type DirectiveError struct {
	message string
}

func (e *DirectiveError) Error() string {
	return e.message
}

func directiveErrorf(format string, args ...any) *DirectiveError {
	return &DirectiveError{
		message: fmt.Sprintf(format, args...),
	}
}

var _ error = &DirectiveError{}
