// Package pipeline implements the stages that turn an untrusted card
// document into trusted output.
//
// Stages, in the order callers use them:
//   - Frontmatter split (SplitFrontmatter)
//   - Markdown preprocessing (line endings, NUL bytes)
//   - Markdown to HTML fragment conversion via goldmark
//   - Allow-list sanitization via bluemonday
//   - Link and image rewriting over a streaming tokenizer
//
// Each stage is stateless after construction and safe for concurrent use.
package pipeline
