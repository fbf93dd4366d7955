package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ImageFilter decides whether an <img> with the given src may be kept.
type ImageFilter func(src string) bool

// RewriteLinksAndImages walks sanitized HTML as a token stream and:
//   - sets target="_blank" rel="noopener noreferrer" on every <a>
//   - removes every <img> whose src is missing or rejected by allowImage
//   - sets loading="lazy" on every kept <img>
//
// All other tokens are copied through byte for byte. The walk is iterative,
// so nesting depth never grows the call stack.
func RewriteLinksAndImages(htmlContent string, allowImage ImageFilter) (string, error) {
	if htmlContent == "" {
		return "", nil
	}

	var out bytes.Buffer
	out.Grow(len(htmlContent) + len(htmlContent)/8)

	z := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
			}
			return out.String(), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := z.Raw()
			tok := z.Token()
			switch tok.DataAtom {
			case atom.A:
				out.WriteString(rewriteAnchor(tok).String())
			case atom.Img:
				if kept, ok := rewriteImage(tok, allowImage); ok {
					out.WriteString(kept.String())
				}
			default:
				out.Write(raw)
			}

		default:
			out.Write(z.Raw())
		}
	}
}

// rewriteAnchor drops any existing target/rel and appends the safe pair.
func rewriteAnchor(tok html.Token) html.Token {
	attrs := make([]html.Attribute, 0, len(tok.Attr)+2)
	for _, a := range tok.Attr {
		if a.Key == "target" || a.Key == "rel" {
			continue
		}
		attrs = append(attrs, a)
	}
	attrs = append(attrs,
		html.Attribute{Key: "target", Val: "_blank"},
		html.Attribute{Key: "rel", Val: "noopener noreferrer"},
	)
	tok.Attr = attrs
	return tok
}

// rewriteImage returns the image with loading="lazy", or false when it must go.
func rewriteImage(tok html.Token, allowImage ImageFilter) (html.Token, bool) {
	src := ""
	attrs := make([]html.Attribute, 0, len(tok.Attr)+1)
	for _, a := range tok.Attr {
		switch a.Key {
		case "src":
			src = a.Val
		case "loading":
			continue
		}
		attrs = append(attrs, a)
	}
	if src == "" || allowImage == nil || !allowImage(src) {
		return tok, false
	}
	tok.Attr = append(attrs, html.Attribute{Key: "loading", Val: "lazy"})
	return tok, true
}
