package admonish

import (
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestPreprocess(t *testing.T) {
	type testCase struct {
		Name     string
		Content  string
		Options  []OptionFunc
		Expected string
	}

	testCases := []testCase{
		{
			Name:     "simple admonition",
			Content:  "# Chapter\n```admonish\nA simple admonition.\n```\nText",
			Expected: "# Chapter\n\n<div id=\"admonition-note\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nNote\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-note\"></a>\n</div>\n<div>\n\nA simple admonition.\n\n</div>\n</div>\nText",
		},
		{
			Name:     "explicit kind",
			Content:  "```admonish warning\nA warning.\n```",
			Expected: "\n<div id=\"admonition-warning\" class=\"admonition warning\">\n<div class=\"admonition-title\">\n\nWarning\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-warning\"></a>\n</div>\n<div>\n\nA warning.\n\n</div>\n</div>",
		},
		{
			Name:     "alias kind keeps its own title",
			Content:  "```admonish caution\nBe careful.\n```\n",
			Expected: "\n<div id=\"admonition-caution\" class=\"admonition warning\">\n<div class=\"admonition-title\">\n\nCaution\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-caution\"></a>\n</div>\n<div>\n\nBe careful.\n\n</div>\n</div>\n",
		},
		{
			Name:     "legacy classnames",
			Content:  "```admonish tip.my-style.other-style\nStylish tip.\n```\n",
			Expected: "\n<div id=\"admonition-tip\" class=\"admonition tip my-style other-style\">\n<div class=\"admonition-title\">\n\nTip\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-tip\"></a>\n</div>\n<div>\n\nStylish tip.\n\n</div>\n</div>\n",
		},
		{
			Name:     "empty classname segments and explicit empty title",
			Content:  "```admonish .... \"\"\nContent.\n```\n",
			Expected: "\n<div id=\"admonition-default\" class=\"admonition note\">\n<div>\n\nContent.\n\n</div>\n</div>\n",
		},
		{
			Name:     "attribute form",
			Content:  "```admonish tip class=\"my other-style\" title=\"Article Heading\"\nBody text.\n```\n",
			Expected: "\n<div id=\"admonition-article-heading\" class=\"admonition tip my other-style\">\n<div class=\"admonition-title\">\n\nArticle Heading\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-article-heading\"></a>\n</div>\n<div>\n\nBody text.\n\n</div>\n</div>\n",
		},
		{
			Name:     "repeated titles get numeric suffixes",
			Content:  "```admonish note \"My note\"\n1\n```\n```admonish note \"My note\"\n2\n```\n",
			Expected: "\n<div id=\"admonition-my-note\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nMy note\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-my-note\"></a>\n</div>\n<div>\n\n1\n\n</div>\n</div>\n\n<div id=\"admonition-my-note-1\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nMy note\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-my-note-1\"></a>\n</div>\n<div>\n\n2\n\n</div>\n</div>\n",
		},
		{
			Name:     "collapsible",
			Content:  "```admonish collapsible=true\nHidden content.\n```\n",
			Expected: "\n<details id=\"admonition-note\" class=\"admonition note\">\n<summary class=\"admonition-title\">\n\nNote\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-note\"></a>\n</summary>\n<div>\n\nHidden content.\n\n</div>\n</details>\n",
		},
		{
			Name:     "title markdown is rendered",
			Content:  "```admonish note \"And \\\"<i>in</i>\\\" the title\"\nBody.\n```\n",
			Expected: "\n<div id=\"admonition-and-in-the-title\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nAnd &quot;<i>in</i>&quot; the title\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-and-in-the-title\"></a>\n</div>\n<div>\n\nBody.\n\n</div>\n</div>\n",
		},
		{
			Name:     "backslash escapes in the info string",
			Content:  "\n```admonish note \"And \\\\\"<i>in</i>\\\\\" the title\"\nWith <b>html</b> styling.\n```\nhello\n",
			Expected: "\n\n<div id=\"admonition-and-in-the-title\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nAnd &quot;<i>in</i>&quot; the title\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-and-in-the-title\"></a>\n</div>\n<div>\n\nWith <b>html</b> styling.\n\n</div>\n</div>\nhello\n",
		},
		{
			Name:     "title without kind",
			Content:  "```admonish \"Just a title\"\nBody.\n```\n",
			Expected: "\n<div id=\"admonition-just-a-title\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nJust a title\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-just-a-title\"></a>\n</div>\n<div>\n\nBody.\n\n</div>\n</div>\n",
		},
		{
			Name:     "unknown kind falls back to note",
			Content:  "```admonish zorp\nWhat am I.\n```\n",
			Expected: "\n<div id=\"admonition-note\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nNote\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-note\"></a>\n</div>\n<div>\n\nWhat am I.\n\n</div>\n</div>\n",
		},
		{
			Name:     "strip mode keeps only the body",
			Content:  "Before\n```admonish note \"Title\"\nOnly the body.\n```\nAfter\n",
			Options:  []OptionFunc{WithRenderTextMode(RenderTextModeStrip)},
			Expected: "Before\n\nOnly the body.\n\nAfter\n",
		},
		{
			Name:     "default title applies to unspecified kind",
			Content:  "```admonish\nBody.\n```\n",
			Options:  []OptionFunc{WithDefaults(Defaults{Title: strPtr("Look here")})},
			Expected: "\n<div id=\"admonition-look-here\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nLook here\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-look-here\"></a>\n</div>\n<div>\n\nBody.\n\n</div>\n</div>\n",
		},
		{
			Name:     "explicit kind beats default title",
			Content:  "```admonish tip\nBody.\n```\n",
			Options:  []OptionFunc{WithDefaults(Defaults{Title: strPtr("Look here")})},
			Expected: "\n<div id=\"admonition-tip\" class=\"admonition tip\">\n<div class=\"admonition-title\">\n\nTip\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-tip\"></a>\n</div>\n<div>\n\nBody.\n\n</div>\n</div>\n",
		},
		{
			Name:     "explicit empty title beats default title",
			Content:  "```admonish title=\"\"\nBody.\n```\n",
			Options:  []OptionFunc{WithDefaults(Defaults{Title: strPtr("Look here")})},
			Expected: "\n<div id=\"admonition-default\" class=\"admonition note\">\n<div>\n\nBody.\n\n</div>\n</div>\n",
		},
		{
			Name:     "default collapsible",
			Content:  "```admonish\nBody.\n```\n",
			Options:  []OptionFunc{WithDefaults(Defaults{Collapsible: true})},
			Expected: "\n<details id=\"admonition-note\" class=\"admonition note\">\n<summary class=\"admonition-title\">\n\nNote\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-note\"></a>\n</summary>\n<div>\n\nBody.\n\n</div>\n</details>\n",
		},
		{
			Name:     "block collapsible overrides default",
			Content:  "```admonish collapsible=false\nBody.\n```\n",
			Options:  []OptionFunc{WithDefaults(Defaults{Collapsible: true})},
			Expected: "\n<div id=\"admonition-note\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nNote\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-note\"></a>\n</div>\n<div>\n\nBody.\n\n</div>\n</div>\n",
		},
		{
			Name:     "tilde fence",
			Content:  "~~~admonish\nTilde body.\n~~~\n",
			Expected: "\n<div id=\"admonition-note\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nNote\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-note\"></a>\n</div>\n<div>\n\nTilde body.\n\n</div>\n</div>\n",
		},
		{
			Name:     "longer fence keeps nested backticks",
			Content:  "````admonish\nInner ```\nfence text\n````\n",
			Expected: "\n<div id=\"admonition-note\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nNote\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-note\"></a>\n</div>\n<div>\n\nInner ```\nfence text\n\n</div>\n</div>\n",
		},
		{
			Name:     "unclosed fence runs to end of input",
			Content:  "```admonish\nUnclosed body",
			Expected: "\n<div id=\"admonition-note\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nNote\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-note\"></a>\n</div>\n<div>\n\nUnclosed body\n\n</div>\n</div>",
		},
		{
			Name:     "directive inside list item",
			Content:  "- item\n  ```admonish\n  Nested.\n  ```\n",
			Expected: "- item\n  \n<div id=\"admonition-note\" class=\"admonition note\">\n<div class=\"admonition-title\">\n\nNote\n\n<a class=\"admonition-anchor-link\" href=\"#admonition-note\"></a>\n</div>\n<div>\n\nNested.\n\n</div>\n</div>\n",
		},
		{
			Name:     "other fences untouched",
			Content:  "```rust\nlet x = 10;\nx *= 2;\n```\n",
			Expected: "```rust\nlet x = 10;\nx *= 2;\n```\n",
		},
		{
			Name:     "longer keyword is not a directive",
			Content:  "```admonishment\nNot ours.\n```\n",
			Expected: "```admonishment\nNot ours.\n```\n",
		},
		{
			Name:     "tables untouched",
			Content:  "# Heading\n\n| Header 1 | Header 2 |\n|----------|----------|\n| abc      | def      |\n",
			Expected: "# Heading\n\n| Header 1 | Header 2 |\n|----------|----------|\n| abc      | def      |\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			result, err := Preprocess(tc.Content, tc.Options...)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Expected, result; e != g {
				t.Errorf("preprocessed document: expected\n%q\n\ngot\n%q", e, g)
			}
		})
	}
}

func TestPreprocessRoundTrip(t *testing.T) {
	data, err := os.ReadFile("testdata/plain_chapter.md")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	result, err := Preprocess(string(data))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := string(data), result; e != g {
		t.Errorf("document without directives: expected it back unchanged, got\n%q", g)
	}
}

func TestPreprocessContinueOnFailure(t *testing.T) {
	content := "# Chapter\n```admonish title=\"\nBody.\n```\n```admonish\nStill fine.\n```\n"

	result, err := Preprocess(content)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	expectedFragments := []string{
		"<div id=\"admonition-error-rendering-admonishment\" class=\"admonition bug\">",
		"Error rendering admonishment",
		"Failed with:\n\n```log\n",
		"Original markdown input:\n\n````markdown\n```admonish title=\"\nBody.\n```\n````",
		"<div id=\"admonition-note\" class=\"admonition note\">",
		"Still fine.",
	}

	for _, fragment := range expectedFragments {
		if !strings.Contains(result, fragment) {
			t.Errorf("expected result to contain %q, got\n%s", fragment, result)
		}
	}
}

func TestPreprocessBailOnFailure(t *testing.T) {
	content := "# Chapter\n```admonish title=\"\nBody.\n```\n"

	result, err := Preprocess(content, WithOnFailure(OnFailureBail))
	if err == nil {
		t.Fatal("expected an error, got none")
	}

	if e, g := "", result; e != g {
		t.Errorf("result: expected %q, got %q", e, g)
	}

	// The message ends with the offending block, with no parse detail
	// appended after it.
	expected := "Error processing admonition, bailing:\n```admonish title=\"\nBody.\n```"
	if e, g := expected, err.Error(); e != g {
		t.Errorf("bail error: expected %q, got %q", e, g)
	}
}

func strPtr(s string) *string {
	return &s
}
