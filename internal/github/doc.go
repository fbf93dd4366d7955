// Package github fetches ship cards from public GitHub repositories.
//
// A card is addressed by a repository URL, optionally pointing at a branch
// or at a specific Markdown file:
//
//	https://github.com/{owner}/{repo}
//	https://github.com/{owner}/{repo}/tree/{ref}
//	https://github.com/{owner}/{repo}/blob/{ref}/{path}.md
//
// Without an explicit file the card is read from .ishipped/card.md on the
// repository's default branch. Default branches are cached in memory.
package github
