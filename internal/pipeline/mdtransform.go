package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CardPreprocessor prepares a card body for goldmark.
type CardPreprocessor struct{}

var _ MarkdownPreprocessor = (*CardPreprocessor)(nil)

// PreprocessMarkdown normalizes line endings and replaces NUL bytes with
// U+FFFD, as CommonMark requires.
func (p *CardPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = strings.ReplaceAll(content, "\x00", "\uFFFD")
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
