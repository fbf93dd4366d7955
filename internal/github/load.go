package github

import (
	"context"

	"golang.org/x/sync/errgroup"

	shipcard "github.com/alnah/go-shipcard"
)

// LoadedCard is a fetched, parsed and rendered card.
type LoadedCard struct {
	Owner    string                `json:"owner"`
	Repo     string                `json:"repo"`
	Ref      string                `json:"ref"`
	CardPath string                `json:"cardPath"`
	Card     *shipcard.ParsedCard  `json:"card"`
	HTML     string                `json:"html"`
	Metadata shipcard.RepoMetadata `json:"metadata"`
}

// Location returns where the card lives, for resolving relative paths.
func (l *LoadedCard) Location() shipcard.Location {
	return shipcard.Location{Owner: l.Owner, Repo: l.Repo, Ref: l.Ref, CardPath: l.CardPath}
}

// Load resolves the ref, fetches the card and repository metadata
// concurrently, parses the card, resolves its image paths and renders the
// body. Parse failures are returned as *shipcard.ParseError.
func (c *Client) Load(ctx context.Context, t *Target) (*LoadedCard, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	ref := t.Ref
	if ref == "" {
		branch, err := c.DefaultBranch(ctx, t.Owner, t.Repo)
		if err != nil {
			return nil, err
		}
		ref = branch
	}

	var (
		raw  string
		meta shipcard.RepoMetadata
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = c.FetchCard(gctx, c.CardURL(*t, ref))
		return err
	})
	g.Go(func() error {
		meta = c.RepoMetadata(gctx, t.Owner, t.Repo)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	card, err := shipcard.ParseCard(raw, t.Owner)
	if err != nil {
		return nil, err
	}

	out := &LoadedCard{
		Owner:    t.Owner,
		Repo:     t.Repo,
		Ref:      ref,
		CardPath: t.CardPath(),
		Metadata: meta,
	}
	card.Frontmatter = card.Frontmatter.Resolved(out.Location())
	out.Card = card

	html, err := c.renderer.Render(ctx, card.Body)
	if err != nil {
		return nil, err
	}
	out.HTML = html
	return out, nil
}
