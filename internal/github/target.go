package github

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	shipcard "github.com/alnah/go-shipcard"
)

// Host is the only host ParseURL accepts.
const Host = "github.com"

var (
	// segmentPattern matches an owner or repository name.
	segmentPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

	// usernamePattern is GitHub's login rule: alphanumerics and single
	// inner hyphens, 1 to 39 characters.
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,37}[a-zA-Z0-9])?$`)
)

// IsValidUsername reports whether s is a well-formed GitHub login.
func IsValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// Target identifies a card inside a repository.
type Target struct {
	Owner string
	Repo  string
	Ref   string // "" means the default branch
	Path  string // "" means the default card path
}

// ParseURL parses a github.com repository, tree or blob URL.
// Blob URLs must point at a .md file.
func ParseURL(input string) (*Target, error) {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "https" || !strings.EqualFold(u.Hostname(), Host) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, input)
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return nil, fmt.Errorf("%w: missing owner or repository", ErrInvalidURL)
	}

	t := &Target{
		Owner: segments[0],
		Repo:  strings.TrimSuffix(segments[1], ".git"),
	}
	if t.Repo == "" {
		return nil, fmt.Errorf("%w: missing repository", ErrInvalidURL)
	}

	if len(segments) > 2 && (segments[2] == "blob" || segments[2] == "tree") {
		if len(segments) > 3 {
			t.Ref = segments[3]
		}
		if segments[2] == "blob" && len(segments) > 4 {
			t.Path = strings.Join(segments[4:], "/")
			if !strings.HasSuffix(t.Path, ".md") {
				return nil, fmt.Errorf("%w: %q is not a Markdown file", ErrInvalidURL, t.Path)
			}
		}
	}
	return t, nil
}

// Validate checks the coordinates before they are used to build request URLs.
func (t Target) Validate() error {
	err := validation.ValidateStruct(&t,
		validation.Field(&t.Owner, validation.Required, validation.Length(1, 39), validation.Match(segmentPattern)),
		validation.Field(&t.Repo, validation.Required, validation.Length(1, 100), validation.Match(segmentPattern)),
		validation.Field(&t.Ref, validation.By(noTraversal)),
		validation.Field(&t.Path, validation.By(noTraversal), validation.By(markdownPath)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return nil
}

func noTraversal(value any) error {
	s, _ := value.(string)
	for _, part := range strings.Split(s, "/") {
		if part == ".." {
			return fmt.Errorf("must not contain '..'")
		}
	}
	return nil
}

func markdownPath(value any) error {
	s, _ := value.(string)
	if s != "" && !strings.HasSuffix(s, ".md") {
		return fmt.Errorf("must be a .md file")
	}
	return nil
}

// CardPath returns the path of the card document inside the repository.
func (t Target) CardPath() string {
	if t.Path != "" {
		return t.Path
	}
	return shipcard.DefaultCardPath
}

// FetchURL returns the raw content URL of the card at ref.
func (t Target) FetchURL(ref string) string {
	return rawURL(shipcard.RawContentBaseURL, t, ref)
}

// String returns the github.com URL the target was parsed from.
func (t Target) String() string {
	s := "https://" + Host + "/" + t.Owner + "/" + t.Repo
	switch {
	case t.Path != "":
		return s + "/blob/" + t.Ref + "/" + t.Path
	case t.Ref != "":
		return s + "/tree/" + t.Ref
	}
	return s
}

func rawURL(base string, t Target, ref string) string {
	return strings.TrimRight(base, "/") + "/" + t.Owner + "/" + t.Repo + "/" + ref + "/" + t.CardPath()
}
