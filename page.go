package shipcard

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-shipcard/internal/dateutil"
)

// DefaultHighlightStyle is the chroma style used for code block colors.
const DefaultHighlightStyle = "github"

// PageInput is everything needed to render a standalone card page.
type PageInput struct {
	Card     *ParsedCard
	At       Location      // resolves relative hero, icon and image paths; zero leaves them as is
	Theme    Theme         // overrides the card's own theme when set
	Metadata *RepoMetadata // optional stars and license
}

// PageRenderer renders cards into complete HTML documents.
// It is safe for concurrent use.
type PageRenderer struct {
	renderer     *Renderer
	tmpl         *template.Template
	baseCSS      template.CSS
	highlightCSS template.CSS
	dateFormat   string
}

// PageOption configures a PageRenderer.
type PageOption func(*pageConfig)

type pageConfig struct {
	loader         AssetLoader
	style          string
	template       string
	highlightStyle string
	dateFormat     string
	renderer       *Renderer
}

// WithAssetLoader sets where the page stylesheet and template come from.
func WithAssetLoader(l AssetLoader) PageOption {
	return func(c *pageConfig) {
		c.loader = l
	}
}

// WithPageStyle selects the stylesheet by name.
func WithPageStyle(name string) PageOption {
	return func(c *pageConfig) {
		c.style = name
	}
}

// WithPageTemplate selects the page template by name.
func WithPageTemplate(name string) PageOption {
	return func(c *pageConfig) {
		c.template = name
	}
}

// WithHighlightStyle selects the chroma style for code blocks.
// Unknown names fall back to chroma's default style.
func WithHighlightStyle(name string) PageOption {
	return func(c *pageConfig) {
		c.highlightStyle = name
	}
}

// WithDateFormat sets how the shipped date is shown, as a token format
// ("MMMM D, YYYY") or preset name ("long", "iso").
func WithDateFormat(format string) PageOption {
	return func(c *pageConfig) {
		c.dateFormat = format
	}
}

// WithBodyRenderer sets the Renderer used for the card body.
func WithBodyRenderer(r *Renderer) PageOption {
	return func(c *pageConfig) {
		c.renderer = r
	}
}

// NewPageRenderer loads the page assets and compiles the template.
func NewPageRenderer(opts ...PageOption) (*PageRenderer, error) {
	cfg := pageConfig{
		style:          DefaultStyle,
		template:       DefaultTemplate,
		highlightStyle: DefaultHighlightStyle,
		dateFormat:     dateutil.DefaultDateFormat,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.loader == nil {
		l, err := NewAssetLoader("")
		if err != nil {
			return nil, err
		}
		cfg.loader = l
	}
	if cfg.renderer == nil {
		cfg.renderer = defaultRenderer
	}
	if _, err := dateutil.ParseDateFormat(resolveDatePreset(cfg.dateFormat)); err != nil {
		return nil, err
	}

	css, err := cfg.loader.LoadStyle(cfg.style)
	if err != nil {
		return nil, err
	}
	src, err := cfg.loader.LoadTemplate(cfg.template)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(cfg.template).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing template %q: %v", ErrPageRender, cfg.template, err)
	}
	hl, err := highlightCSS(cfg.highlightStyle)
	if err != nil {
		return nil, err
	}

	return &PageRenderer{
		renderer:     cfg.renderer,
		tmpl:         tmpl,
		baseCSS:      template.CSS(css), // #nosec G203 -- operator-supplied stylesheet
		highlightCSS: template.CSS(hl),  // #nosec G203 -- generated by chroma
		dateFormat:   cfg.dateFormat,
	}, nil
}

// highlightCSS renders the class-based stylesheet for code blocks.
func highlightCSS(style string) (string, error) {
	var buf bytes.Buffer
	f := chromahtml.New(chromahtml.WithClasses(true))
	if err := f.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("%w: highlight stylesheet: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

func resolveDatePreset(format string) string {
	if p, ok := dateutil.DatePresets[strings.ToLower(format)]; ok {
		return p
	}
	return format
}

// pageData is the view model handed to the page template.
type pageData struct {
	Title, Summary, Hero, Icon, Version string
	Shipped, ShippedISO                 string
	Tags                                []string
	Links                               []CardLink
	Collaborators                       []string
	Images                              []CardImage
	AuthorName, AuthorURL, AuthorAvatar string
	Owner, Repo, RepoURL, RepoLabel     string
	Stars, License, Description         string
	Theme                               Theme
	Accent                              template.CSS
	BaseCSS, HighlightCSS               template.CSS
	Body                                template.HTML
}

// Render produces a standalone HTML5 document for in.Card. The body is
// rendered through the sanitizing pipeline; every other field is escaped
// by html/template.
func (p *PageRenderer) Render(ctx context.Context, in PageInput) (string, error) {
	if in.Card == nil {
		return "", fmt.Errorf("%w: nil card", ErrPageRender)
	}

	body, err := p.renderer.Render(ctx, in.Card.Body)
	if err != nil {
		return "", err
	}

	data := p.viewModel(in)
	data.Body = template.HTML(body) // #nosec G203 -- sanitized by Renderer

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *PageRenderer) viewModel(in PageInput) pageData {
	fm := in.Card.Frontmatter
	if in.At.Owner != "" && in.At.Repo != "" {
		fm = fm.Resolved(in.At)
	}

	theme := fm.Theme
	if in.Theme != "" {
		theme = in.Theme
	}
	if _, ok := themeAccents[theme]; !ok {
		theme = ThemeDefault
	}

	d := pageData{
		Title:         fm.Title,
		Summary:       fm.Summary,
		Hero:          fm.Hero,
		Icon:          fm.Icon,
		Version:       fm.Version,
		Tags:          fm.Tags,
		Links:         fm.Links,
		Collaborators: fm.Collaborators,
		Images:        fm.Images,
		Owner:         in.At.Owner,
		Repo:          in.At.Repo,
		Theme:         theme,
		Accent:        template.CSS(theme.Accent()), // #nosec G203 -- fixed palette
		BaseCSS:       p.baseCSS,
		HighlightCSS:  p.highlightCSS,
	}

	if fm.Shipped != "" {
		if s, err := FormatShippedDateAs(fm.Shipped, p.dateFormat); err == nil {
			d.Shipped = s
		}
		d.ShippedISO, _ = dateutil.FormatShipped(fm.Shipped, "iso")
	}

	d.AuthorName = fm.Author.Name
	if d.AuthorName == "" {
		d.AuthorName = fm.Author.GitHub
	}
	d.AuthorURL = fm.Author.URL
	if d.AuthorURL == "" && fm.Author.GitHub != "" {
		d.AuthorURL = "https://github.com/" + fm.Author.GitHub
	}
	d.AuthorAvatar = fm.Author.Avatar
	if d.AuthorAvatar == "" && fm.Author.GitHub != "" {
		d.AuthorAvatar = "https://github.com/" + fm.Author.GitHub + ".png?size=96"
	}

	owner, repo := in.At.Owner, in.At.Repo
	if fm.Repo != nil {
		owner, repo = fm.Repo.Owner, fm.Repo.Name
	}
	if owner != "" && repo != "" {
		d.RepoURL = "https://github.com/" + owner + "/" + repo
		d.RepoLabel = owner + "/" + repo
	}

	if m := in.Metadata; m != nil {
		if m.Stars > 0 {
			d.Stars = FormatStars(m.Stars)
		}
		d.License = m.License
		d.Description = m.Description
	}
	return d
}

var defaultPageRenderer = sync.OnceValues(func() (*PageRenderer, error) {
	return NewPageRenderer()
})

// RenderPage renders a card page with the built-in assets.
func RenderPage(ctx context.Context, in PageInput) (string, error) {
	p, err := defaultPageRenderer()
	if err != nil {
		return "", err
	}
	return p.Render(ctx, in)
}
