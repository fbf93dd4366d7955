package shipcard

import "strings"

// Field limits. Lengths are counted in Unicode code points.
const (
	MaxTitleLength        = 100
	MaxSummaryLength      = 280
	MaxVersionLength      = 20
	MaxTagLength          = 30
	MaxTags               = 10
	MaxLinkLabelLength    = 50
	MaxLinks              = 10
	MaxCollaboratorLength = 39
	MaxCollaborators      = 20
	MaxImages             = 10
)

// DefaultCardPath is where a card lives inside its repository unless a URL names another file.
const DefaultCardPath = ".ishipped/card.md"

// Theme is a named card color palette.
type Theme string

// Theme constants.
const (
	ThemeDefault  Theme = "default"
	ThemeOcean    Theme = "ocean"
	ThemeForest   Theme = "forest"
	ThemeSunset   Theme = "sunset"
	ThemeLavender Theme = "lavender"
	ThemeMidnight Theme = "midnight"
	ThemeRuby     Theme = "ruby"
)

// Themes lists every palette in display order.
var Themes = []Theme{
	ThemeDefault,
	ThemeOcean,
	ThemeForest,
	ThemeSunset,
	ThemeLavender,
	ThemeMidnight,
	ThemeRuby,
}

// themeAccents maps each palette to its accent color.
var themeAccents = map[Theme]string{
	ThemeDefault:  "#0969da",
	ThemeOcean:    "#0891b2",
	ThemeForest:   "#16a34a",
	ThemeSunset:   "#ea580c",
	ThemeLavender: "#9333ea",
	ThemeMidnight: "#6366f1",
	ThemeRuby:     "#dc2626",
}

// ParseTheme returns the palette named by s, ignoring case and surrounding
// whitespace. The boolean is false for unknown names.
func ParseTheme(s string) (Theme, bool) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := themeAccents[t]; !ok {
		return "", false
	}
	return t, true
}

// Accent returns the theme's accent color, falling back to the default palette.
func (t Theme) Accent() string {
	if c, ok := themeAccents[t]; ok {
		return c
	}
	return themeAccents[ThemeDefault]
}

// ParsedCard is the validated result of ParseCard.
type ParsedCard struct {
	Frontmatter CardFrontmatter `json:"frontmatter" yaml:"frontmatter"`
	Body        string          `json:"body" yaml:"body"` // Markdown after the closing delimiter, trimmed
}

// CardFrontmatter holds validated, clamped card metadata.
// Empty strings, nil pointers and empty slices mean the field was absent or rejected.
type CardFrontmatter struct {
	Title         string        `json:"title" yaml:"title"`
	Summary       string        `json:"summary,omitempty" yaml:"summary,omitempty"`
	Hero          string        `json:"hero,omitempty" yaml:"hero,omitempty"`
	Icon          string        `json:"icon,omitempty" yaml:"icon,omitempty"`
	Shipped       string        `json:"shipped,omitempty" yaml:"shipped,omitempty"`
	Version       string        `json:"version,omitempty" yaml:"version,omitempty"`
	Tags          []string      `json:"tags" yaml:"tags"`
	Author        CardAuthor    `json:"author" yaml:"author"`
	Links         []CardLink    `json:"links" yaml:"links"`
	Repo          *RepoOverride `json:"repo,omitempty" yaml:"repo,omitempty"`
	Collaborators []string      `json:"collaborators" yaml:"collaborators"`
	Images        []CardImage   `json:"images" yaml:"images"`
	Theme         Theme         `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// CardAuthor identifies who shipped the project. Name is never empty after parsing.
type CardAuthor struct {
	Name   string `json:"name" yaml:"name"`
	GitHub string `json:"github,omitempty" yaml:"github,omitempty"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// CardLink is an outbound HTTPS link. At most one link per card is Primary.
type CardLink struct {
	Label   string `json:"label" yaml:"label"`
	URL     string `json:"url" yaml:"url"`
	Primary bool   `json:"primary" yaml:"primary"`
}

// CardImage is a gallery image. URL is a safe relative path or an allow-listed HTTPS URL.
type CardImage struct {
	URL     string `json:"url" yaml:"url"`
	Alt     string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// RepoOverride points the card at a different displayed repository.
type RepoOverride struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
}

// PrimaryLink returns the link marked primary, if any.
func (f *CardFrontmatter) PrimaryLink() (CardLink, bool) {
	for _, l := range f.Links {
		if l.Primary {
			return l, true
		}
	}
	return CardLink{}, false
}

// RepoMetadata is repository information shown alongside a card.
type RepoMetadata struct {
	Stars       int    `json:"stars"`
	License     string `json:"license,omitempty"` // SPDX identifier
	Description string `json:"description,omitempty"`
}
