package main

import (
	"log/slog"
	"net/http"

	shipcard "github.com/alnah/go-shipcard"
	"github.com/alnah/go-shipcard/internal/config"
	"github.com/alnah/go-shipcard/internal/github"
)

// newRenderer builds the Markdown renderer from config.
func newRenderer(cfg *config.Config, noHighlight bool) *shipcard.Renderer {
	return shipcard.NewRenderer(shipcard.WithHighlighting(cfg.Render.Highlight && !noHighlight))
}

// newPageRenderer builds the card page renderer from config.
func newPageRenderer(cfg *config.Config, body *shipcard.Renderer) (*shipcard.PageRenderer, error) {
	loader, err := shipcard.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}
	opts := []shipcard.PageOption{
		shipcard.WithAssetLoader(loader),
		shipcard.WithBodyRenderer(body),
		shipcard.WithHighlightStyle(cfg.Render.HighlightStyle),
		shipcard.WithDateFormat(cfg.Render.DateFormat),
	}
	if cfg.Assets.Style != "" {
		opts = append(opts, shipcard.WithPageStyle(cfg.Assets.Style))
	}
	if cfg.Assets.Template != "" {
		opts = append(opts, shipcard.WithPageTemplate(cfg.Assets.Template))
	}
	return shipcard.NewPageRenderer(opts...)
}

// newGitHubClient builds the GitHub client from config.
func newGitHubClient(cfg *config.Config, body *shipcard.Renderer, logger *slog.Logger) *github.Client {
	gh := cfg.GitHub
	return github.NewClient(
		github.WithHTTPClient(&http.Client{Timeout: gh.Timeout}),
		github.WithAPIBaseURL(gh.APIBaseURL),
		github.WithRawBaseURL(gh.RawBaseURL),
		github.WithToken(gh.Token),
		github.WithUserAgent(gh.UserAgent),
		github.WithBranchCache(gh.BranchCacheSize, gh.BranchCacheTTL),
		github.WithRenderer(body),
		github.WithLogger(logger),
	)
}
