package shipcard

import (
	"strings"

	"github.com/alnah/go-shipcard/internal/urlcheck"
)

// RawContentBaseURL serves raw repository files.
const RawContentBaseURL = "https://raw.githubusercontent.com"

// Location anchors relative card paths inside a repository.
type Location struct {
	Owner    string
	Repo     string
	Ref      string // branch or tag
	CardPath string // path of the card document, DefaultCardPath when empty
}

// cardDir returns the directory that holds the card, or "" at the repository root.
func (l Location) cardDir() string {
	p := l.CardPath
	if p == "" {
		p = DefaultCardPath
	}
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// resolve turns a relative image reference into a raw content URL.
// Absolute http, https and data values are returned unchanged.
func (l Location) resolve(ref string) string {
	if ref == "" {
		return ""
	}
	if urlcheck.IsAbsolute(ref) {
		return ref
	}

	clean := strings.TrimPrefix(ref, "./")
	joined := clean
	if dir := l.cardDir(); dir != "" {
		joined = dir + "/" + clean
	}
	return RawContentBaseURL + "/" + l.Owner + "/" + l.Repo + "/" + l.Ref + "/" + joined
}

// ResolveHeroURL resolves a hero image reference against the card location.
// It returns "" for an empty reference and never touches the network.
func ResolveHeroURL(hero string, at Location) string {
	return at.resolve(hero)
}

// ResolveIconURL resolves an icon reference against the card location.
func ResolveIconURL(icon string, at Location) string {
	return at.resolve(icon)
}

// ResolveImageURLs resolves every image URL, keeping alt text and captions.
// The input slice is not modified.
func ResolveImageURLs(images []CardImage, at Location) []CardImage {
	if images == nil {
		return nil
	}
	out := make([]CardImage, len(images))
	for i, img := range images {
		img.URL = at.resolve(img.URL)
		out[i] = img
	}
	return out
}

// Resolved returns a copy of f with hero, icon and image URLs resolved.
func (f CardFrontmatter) Resolved(at Location) CardFrontmatter {
	f.Hero = ResolveHeroURL(f.Hero, at)
	f.Icon = ResolveIconURL(f.Icon, at)
	f.Images = ResolveImageURLs(f.Images, at)
	return f
}
