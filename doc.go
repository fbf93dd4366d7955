// Package shipcard turns a project "ship card" (a Markdown document with
// YAML frontmatter, usually stored at .ishipped/card.md) into validated
// card data and safe HTML.
//
// # Quick Start
//
// Parse a card, resolve its image paths and render the body:
//
//	card, err := shipcard.ParseCard(raw, "octocat")
//	if err != nil {
//	    log.Fatal(shipcard.CodeOf(err)) // INVALID_FORMAT or MISSING_TITLE
//	}
//
//	at := shipcard.Location{Owner: "octocat", Repo: "hello", Ref: "main"}
//	fm := card.Frontmatter.Resolved(at)
//
//	html, err := shipcard.RenderMarkdown(ctx, card.Body)
//
// # Parsing
//
// ParseCard requires a frontmatter block delimited by "---" lines and a
// non-empty title of at most 100 characters. Every other field is optional
// and is clamped, filtered or dropped when invalid rather than failing the
// whole card. Lengths are counted in Unicode code points.
//
// # Rendering
//
// The body pipeline follows these stages:
//
//  1. Line ending normalization
//  2. Markdown to HTML via Goldmark (GFM, class-based syntax highlighting)
//  3. Allow-list sanitization (bluemonday): https links only, no h1,
//     no scripts, styles or event handlers
//  4. Link and image rewriting: links open in a new tab with
//     rel="noopener noreferrer", images from unknown hosts are removed,
//     kept images load lazily
//
// A Renderer is safe for concurrent use. RenderMarkdown uses a shared one.
//
// # Card Pages
//
// RenderPage wraps a card in a standalone themed HTML document. The
// stylesheet and template can be overridden from a directory:
//
//	loader, err := shipcard.NewAssetLoader("/path/to/assets")
//	pages, err := shipcard.NewPageRenderer(shipcard.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── card.css
//	└── templates/
//	    └── card.html
package shipcard
