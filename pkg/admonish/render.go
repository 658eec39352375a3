package admonish

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// HTML renders the admonition as nested container markup, spliced in place
// of the original fenced block. The body is left as markdown for the
// surrounding pipeline; blank lines around it keep the reconstituted
// document valid.
func (a *Admonition) HTML(id string) (string, error) {
	outer, title := "div", "div"
	if a.Collapsible {
		outer, title = "details", "summary"
	}

	classes := strings.Join(append([]string{"admonition", a.Kind.Class()}, a.Classes...), " ")

	var sb strings.Builder

	fmt.Fprintf(&sb, "\n<%s id=\"%s\" class=\"%s\">\n", outer, id, classes)

	if a.Title != "" {
		titleHTML, err := renderInlineMarkdown(a.Title)
		if err != nil {
			return "", errors.WithStack(err)
		}

		fmt.Fprintf(&sb, "<%s class=\"admonition-title\">\n\n%s\n\n", title, titleHTML)
		fmt.Fprintf(&sb, "<a class=\"admonition-anchor-link\" href=\"#%s\"></a>\n", id)
		fmt.Fprintf(&sb, "</%s>\n", title)
	}

	fmt.Fprintf(&sb, "<div>\n\n%s\n\n</div>\n</%s>", a.Body, outer)

	return sb.String(), nil
}

// Strip renders only the body content, for output targets that cannot
// carry the container markup.
func (a *Admonition) Strip() string {
	return "\n" + a.Body + "\n"
}
