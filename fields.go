package shipcard

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-shipcard/internal/dateutil"
	"github.com/alnah/go-shipcard/internal/urlcheck"
)

// Every validator below is total: it returns the accepted value or the
// field's zero value, never an error.

// repoSegmentPattern matches a repository owner or name in a repo override.
var repoSegmentPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// collaboratorPattern is looser than GitHub's own login rules:
// consecutive and trailing hyphens are accepted.
var collaboratorPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// truncate returns at most n code points of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// stringValue returns v trimmed when it is a string.
func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// isFalsy reports whether v counts as "not provided" for fields with defaults.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return val == ""
	case int:
		return val == 0
	case int64:
		return val == 0
	case uint64:
		return val == 0
	case float64:
		return val == 0
	}
	return false
}

func validateSummary(v any) string {
	s, ok := stringValue(v)
	if !ok {
		return ""
	}
	return truncate(s, MaxSummaryLength)
}

func validateVersion(v any) string {
	s, ok := stringValue(v)
	if !ok {
		return ""
	}
	return truncate(s, MaxVersionLength)
}

// validateImageRef accepts hero and icon values.
func validateImageRef(v any) string {
	s, ok := stringValue(v)
	if !ok || !urlcheck.IsValidImageRef(s) {
		return ""
	}
	return s
}

func validateShipped(v any) string {
	switch val := v.(type) {
	case string:
		if dateutil.ValidShipped(val) {
			return val
		}
	case time.Time:
		// Some YAML decoders resolve unquoted dates to timestamps.
		if val.IsZero() {
			return ""
		}
		if h, m, s := val.Clock(); h == 0 && m == 0 && s == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	}
	return ""
}

func validateTags(v any) []string {
	tags := []string{}
	items, ok := v.([]any)
	if !ok {
		return tags
	}
	for _, item := range items {
		s, ok := stringValue(item)
		if !ok {
			continue
		}
		if n := runeLen(s); n == 0 || n > MaxTagLength {
			continue
		}
		tags = append(tags, s)
		if len(tags) == MaxTags {
			break
		}
	}
	return tags
}

// validateAuthor always returns a usable author, defaulting to the repository owner.
func validateAuthor(v any, repoOwner string) CardAuthor {
	fallback := CardAuthor{Name: repoOwner, GitHub: repoOwner}
	if isFalsy(v) {
		return fallback
	}

	switch val := v.(type) {
	case string:
		name := strings.TrimSpace(val)
		if name == "" {
			return fallback
		}
		return CardAuthor{Name: name, GitHub: repoOwner}

	case map[string]any:
		author := fallback
		if name, ok := stringValue(val["name"]); ok && name != "" {
			author.Name = name
		}
		if gh, ok := stringValue(val["github"]); ok && gh != "" {
			author.GitHub = gh
		}
		if u, ok := val["url"].(string); ok && urlcheck.IsHTTPS(u) {
			author.URL = u
		}
		if a, ok := val["avatar"].(string); ok && urlcheck.IsHTTPS(a) {
			author.Avatar = a
		}
		return author
	}
	return fallback
}

// validateLinks keeps the first MaxLinks entries, then drops invalid ones.
// Only the first entry with primary: true keeps the flag.
func validateLinks(v any) []CardLink {
	links := []CardLink{}
	items, ok := v.([]any)
	if !ok {
		return links
	}
	if len(items) > MaxLinks {
		items = items[:MaxLinks]
	}

	hasPrimary := false
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		label, _ := stringValue(obj["label"])
		url, _ := stringValue(obj["url"])
		if label == "" || url == "" || runeLen(label) > MaxLinkLabelLength {
			continue
		}
		if !urlcheck.IsHTTPS(url) {
			continue
		}

		primary := false
		if p, ok := obj["primary"].(bool); ok && p && !hasPrimary {
			primary = true
			hasPrimary = true
		}
		links = append(links, CardLink{Label: label, URL: url, Primary: primary})
	}
	return links
}

// validateRepo accepts the override only when both halves are valid.
func validateRepo(v any) *RepoOverride {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	owner, _ := obj["owner"].(string)
	name, _ := obj["name"].(string)
	if !repoSegmentPattern.MatchString(owner) || !repoSegmentPattern.MatchString(name) {
		return nil
	}
	return &RepoOverride{Owner: owner, Name: name}
}

func validateCollaborators(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		s, ok := stringValue(item)
		if !ok || s == "" {
			continue
		}
		if len(s) > MaxCollaboratorLength || !collaboratorPattern.MatchString(s) {
			continue
		}
		out = append(out, s)
		if len(out) == MaxCollaborators {
			break
		}
	}
	return out
}

func validateImages(v any) []CardImage {
	images := []CardImage{}
	items, ok := v.([]any)
	if !ok {
		return images
	}
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ref := validateImageRef(obj["url"])
		if ref == "" {
			continue
		}
		img := CardImage{URL: ref}
		if alt, ok := stringValue(obj["alt"]); ok {
			img.Alt = alt
		}
		if caption, ok := stringValue(obj["caption"]); ok {
			img.Caption = caption
		}
		images = append(images, img)
		if len(images) == MaxImages {
			break
		}
	}
	return images
}

func validateTheme(v any) Theme {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	t, ok := ParseTheme(s)
	if !ok {
		return ""
	}
	return t
}
