package pipeline

import (
	"context"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// AllowedTags is the complete set of elements that survive sanitization.
// h1 is absent: a card body must not compete with the card title.
var AllowedTags = []string{
	"h2", "h3", "h4", "h5", "h6",
	"p", "br", "hr",
	"ul", "ol", "li",
	"blockquote", "pre", "code",
	"a", "strong", "em", "del",
	"img",
	"table", "thead", "tbody", "tr", "th", "td",
	"span",
}

// AllowedAttributes maps each element to the attributes it may keep.
// "class" carries syntax highlighting classes only.
var AllowedAttributes = map[string][]string{
	"a":    {"href", "title"},
	"img":  {"src", "alt", "title", "loading"},
	"code": {"class"},
	"span": {"class"},
	"pre":  {"class"},
}

// AllowedURLSchemes are the only schemes accepted in href and src.
var AllowedURLSchemes = []string{"https"}

// classNamePattern restricts class values to highlighter-style identifiers.
var classNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 _+#.-]*$`)

// loadingPattern restricts img loading to the two values browsers understand.
var loadingPattern = regexp.MustCompile(`^(lazy|eager)$`)

// HTMLSanitizer removes every element, attribute and URL not on the allow-list.
type HTMLSanitizer interface {
	Sanitize(ctx context.Context, htmlContent string) string
}

// Sanitizer is an HTMLSanitizer backed by a bluemonday policy.
type Sanitizer struct {
	policy *bluemonday.Policy
}

var _ HTMLSanitizer = (*Sanitizer)(nil)

// NewSanitizer builds the card body policy.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: newCardPolicy()}
}

func newCardPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(AllowedTags...)

	for element, attrs := range AllowedAttributes {
		for _, attr := range attrs {
			switch attr {
			case "class":
				p.AllowAttrs(attr).Matching(classNamePattern).OnElements(element)
			case "loading":
				p.AllowAttrs(attr).Matching(loadingPattern).OnElements(element)
			default:
				p.AllowAttrs(attr).OnElements(element)
			}
		}
	}

	p.AllowURLSchemes(AllowedURLSchemes...)
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(false)

	return p
}

// Sanitize returns htmlContent reduced to the allow-list.
// Content that cannot be represented safely is dropped, never reported.
func (s *Sanitizer) Sanitize(ctx context.Context, htmlContent string) string {
	if ctx.Err() != nil {
		return ""
	}
	return s.policy.Sanitize(htmlContent)
}
