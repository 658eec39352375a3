package admonish

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const directiveKeyword = "admonish"

// block is one recognized admonish fence: the byte span it replaces, the
// directive header and the verbatim body.
type block struct {
	start  int
	end    int
	header string
	body   string
}

// scan walks the document's AST and collects every fenced code block whose
// info string starts with the trigger keyword, in document order.
func scan(source []byte) ([]block, error) {
	md := newMarkdown()

	root := md.Parser().Parse(text.NewReader(source))

	blocks := make([]block, 0)

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok || fence.Info == nil {
			return ast.WalkContinue, nil
		}

		// Backslash escapes in the info string are resolved before the
		// directive is read. Replacement spans still cover the raw bytes.
		info := strings.TrimSpace(string(util.UnescapePunctuations(fence.Info.Segment.Value(source))))

		header, ok := directiveHeader(info)
		if !ok {
			return ast.WalkContinue, nil
		}

		start, end, err := fenceSpan(source, fence)
		if err != nil {
			return ast.WalkStop, errors.WithStack(err)
		}

		blocks = append(blocks, block{
			start:  start,
			end:    end,
			header: header,
			body:   fenceBody(source, fence),
		})

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return blocks, nil
}

// directiveHeader returns the header text following the trigger keyword.
// The keyword must be the whole info string or be followed by whitespace:
// "admonishment" is not a directive.
func directiveHeader(info string) (string, bool) {
	if !strings.HasPrefix(info, directiveKeyword) {
		return "", false
	}

	rest := info[len(directiveKeyword):]
	if rest == "" {
		return "", true
	}

	if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
		return "", false
	}

	return strings.TrimSpace(rest), true
}

// fenceBody returns the content lines of the fence verbatim, without the
// final line's trailing newline.
func fenceBody(source []byte, fence *ast.FencedCodeBlock) string {
	lines := fence.Lines()

	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// fenceSpan computes the byte span of the whole fence, from the first
// delimiter byte through the closing fence, excluding the trailing newline.
// The exact source text inside the span is what error reporting reproduces.
func fenceSpan(source []byte, fence *ast.FencedCodeBlock) (int, int, error) {
	// The info segment sits on the opening fence line. Walk back to the
	// line start, then past indentation and container markers to the
	// delimiter run: neither fence character can occur in a prefix.
	lineStart := fence.Info.Segment.Start
	for lineStart > 0 && source[lineStart-1] != '\n' {
		lineStart--
	}

	offset := strings.IndexAny(string(source[lineStart:fence.Info.Segment.Start]), "`~")
	if offset < 0 {
		return 0, 0, errors.Errorf("could not locate fence delimiter at offset %d", lineStart)
	}

	start := lineStart + offset
	marker := source[start]

	openLen := 0
	for i := start; i < len(source) && source[i] == marker; i++ {
		openLen++
	}

	// The line after the last content line is the closing fence, if any.
	var closeLineStart int
	if lines := fence.Lines(); lines.Len() > 0 {
		closeLineStart = lines.At(lines.Len() - 1).Stop
	} else {
		closeLineStart = skipLine(source, fence.Info.Segment.Stop)
	}

	end := closingFenceEnd(source, closeLineStart, marker, openLen)
	if end < 0 {
		// Unclosed fence: the span runs to the last content byte.
		end = closeLineStart
		if end > 0 && source[end-1] == '\n' {
			end--
			if end > 0 && source[end-1] == '\r' {
				end--
			}
		}
	}

	return start, end, nil
}

// closingFenceEnd checks whether the line starting at lineStart is a valid
// closing fence for the given marker and returns the offset right before
// its line ending, or -1. Container prefixes (indentation, blockquote
// markers) are skipped: the tokenizer already decided the block ends here.
func closingFenceEnd(source []byte, lineStart int, marker byte, openLen int) int {
	i := lineStart
	for i < len(source) && (source[i] == ' ' || source[i] == '\t' || source[i] == '>') {
		i++
	}

	run := 0
	for i < len(source) && source[i] == marker {
		i++
		run++
	}

	if run < openLen {
		return -1
	}

	for i < len(source) && (source[i] == ' ' || source[i] == '\t') {
		i++
	}

	if i == len(source) || source[i] == '\n' || source[i] == '\r' {
		return i
	}

	return -1
}

func skipLine(source []byte, from int) int {
	for i := from; i < len(source); i++ {
		if source[i] == '\n' {
			return i + 1
		}
	}

	return len(source)
}
