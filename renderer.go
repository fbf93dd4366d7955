package shipcard

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-shipcard/internal/pipeline"
	"github.com/alnah/go-shipcard/internal/urlcheck"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CardPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.HTMLSanitizer        = (*pipeline.Sanitizer)(nil)
)

// Renderer turns a card body into sanitized HTML.
// A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	sanitizer     pipeline.HTMLSanitizer
	allowImage    pipeline.ImageFilter
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	highlight  bool
	allowImage pipeline.ImageFilter
}

// WithHighlighting toggles syntax highlighting classes on fenced code blocks.
func WithHighlighting(enabled bool) RendererOption {
	return func(c *rendererConfig) {
		c.highlight = enabled
	}
}

// WithImageFilter narrows which images survive. The filter only sees
// https URLs and runs after the built-in host allow-list, so it cannot
// widen it.
func WithImageFilter(allow func(src string) bool) RendererOption {
	return func(c *rendererConfig) {
		c.allowImage = allow
	}
}

// NewRenderer creates a Renderer. Highlighting is enabled by default.
func NewRenderer(opts ...RendererOption) *Renderer {
	cfg := rendererConfig{highlight: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	allow := urlcheck.IsAllowedImageURL
	if extra := cfg.allowImage; extra != nil {
		allow = func(src string) bool {
			return urlcheck.IsAllowedImageURL(src) && extra(src)
		}
	}

	return &Renderer{
		preprocessor:  &pipeline.CardPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(pipeline.WithHighlighting(cfg.highlight)),
		sanitizer:     pipeline.NewSanitizer(),
		allowImage:    allow,
	}
}

// Render converts Markdown to sanitized HTML.
//
// Empty or blank input yields "". Malformed Markdown never fails; it renders
// as text. The only errors are ctx cancellation and ErrHTMLConversion for an
// unexpected internal failure, which callers should not retry.
func (r *Renderer) Render(ctx context.Context, markdown string) (html string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	defer func() {
		if p := recover(); p != nil {
			html = ""
			err = fmt.Errorf("%w: panic: %v", ErrHTMLConversion, p)
		}
	}()

	md := r.preprocessor.PreprocessMarkdown(ctx, markdown)

	raw, err := r.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		return "", err
	}

	clean := r.sanitizer.Sanitize(ctx, raw)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := pipeline.RewriteLinksAndImages(clean, r.allowImage)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

var defaultRenderer = NewRenderer()

// RenderMarkdown renders a card body with the default Renderer.
func RenderMarkdown(ctx context.Context, markdown string) (string, error) {
	return defaultRenderer.Render(ctx, markdown)
}
