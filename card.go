package shipcard

import (
	"errors"
	"strings"

	"github.com/alnah/go-shipcard/internal/pipeline"
	"github.com/alnah/go-shipcard/internal/yamlutil"
)

// ParseCard splits a card document into validated frontmatter and its
// Markdown body.
//
// repoOwner is the login of the repository owner and becomes the author
// when the document names none.
//
// Only two conditions fail the parse, both returned as *ParseError:
//   - CodeInvalidFormat: no --- delimited frontmatter, YAML that does not
//     parse to a mapping, or a title longer than MaxTitleLength
//   - CodeMissingTitle: title absent, not a string, or blank
//
// Every other field is validated on its own and silently dropped or
// clamped when invalid.
func ParseCard(raw, repoOwner string) (*ParsedCard, error) {
	block, body, err := pipeline.SplitFrontmatter(raw)
	if err != nil {
		return nil, invalidFormat("card must have YAML frontmatter between --- delimiters", err)
	}

	fields, err := yamlutil.DecodeMapping(block)
	if err != nil {
		if errors.Is(err, yamlutil.ErrNotMapping) {
			return nil, invalidFormat("frontmatter must be a mapping", err)
		}
		return nil, invalidFormat("invalid YAML in frontmatter", err)
	}

	title, _ := stringValue(fields["title"])
	if title == "" {
		return nil, missingTitle()
	}
	if runeLen(title) > MaxTitleLength {
		return nil, invalidFormat("title must be 100 characters or less", nil)
	}

	fm := CardFrontmatter{
		Title:         title,
		Summary:       validateSummary(fields["summary"]),
		Hero:          validateImageRef(fields["hero"]),
		Icon:          validateImageRef(fields["icon"]),
		Shipped:       validateShipped(fields["shipped"]),
		Version:       validateVersion(fields["version"]),
		Tags:          validateTags(fields["tags"]),
		Author:        validateAuthor(fields["author"], repoOwner),
		Links:         validateLinks(fields["links"]),
		Repo:          validateRepo(fields["repo"]),
		Collaborators: validateCollaborators(fields["collaborators"]),
		Images:        validateImages(fields["images"]),
		Theme:         validateTheme(fields["theme"]),
	}

	return &ParsedCard{
		Frontmatter: fm,
		Body:        strings.TrimSpace(body),
	}, nil
}
