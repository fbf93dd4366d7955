package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

var _ HTMLConverter = (*GoldmarkConverter)(nil)

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*converterConfig)

type converterConfig struct {
	highlight bool
}

// WithHighlighting toggles chroma syntax highlighting of fenced code blocks.
// Highlighting is on by default and only ever emits class attributes.
func WithHighlighting(enabled bool) ConverterOption {
	return func(c *converterConfig) {
		c.highlight = enabled
	}
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
// Raw HTML in the source is never passed through: goldmark replaces it
// with a comment that the sanitizer later drops.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	cfg := converterConfig{highlight: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	extensions := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	}
	if cfg.highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	// html.WithUnsafe() is intentionally NOT used.
	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Goldmark has no context support, so conversion runs in a goroutine and
// the caller is released as soon as ctx is done.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: panic: %v", ErrHTMLConversion, r)}
			}
		}()
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
