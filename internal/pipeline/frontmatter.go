package pipeline

import (
	"errors"
	"strings"
)

// ErrNoFrontmatter indicates the document does not open with a delimited YAML block.
var ErrNoFrontmatter = errors.New("document must start with YAML frontmatter between --- delimiters")

const delimiter = "---"

// SplitFrontmatter separates a card document into its YAML block and body.
//
// The document must start with "---" followed by a line break (LF or CRLF).
// The YAML block ends at the first line break followed by "---"; a CR
// directly before that line break belongs to the delimiter. After the closing
// "---" an optional CR and an optional LF are consumed and everything left is
// the body, returned untrimmed.
//
// The closing "---" is not required to sit alone on its line, and the YAML
// block needs at least one line break between the delimiters, so "---\n---"
// is rejected while "---\n\n---" yields an empty block.
func SplitFrontmatter(doc string) (yamlBlock, body string, err error) {
	rest, ok := strings.CutPrefix(doc, delimiter)
	if !ok {
		return "", "", ErrNoFrontmatter
	}
	switch {
	case strings.HasPrefix(rest, "\r\n"):
		rest = rest[2:]
	case strings.HasPrefix(rest, "\n"):
		rest = rest[1:]
	default:
		return "", "", ErrNoFrontmatter
	}

	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		return "", "", ErrNoFrontmatter
	}

	yamlBlock = rest[:end]
	if strings.HasSuffix(yamlBlock, "\r") {
		yamlBlock = yamlBlock[:len(yamlBlock)-1]
	}

	body = rest[end+1+len(delimiter):]
	body = strings.TrimPrefix(body, "\r")
	body = strings.TrimPrefix(body, "\n")
	return yamlBlock, body, nil
}
