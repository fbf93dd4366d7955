package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	shipcard "github.com/alnah/go-shipcard"
)

// Client defaults.
const (
	DefaultAPIBaseURL      = "https://api.github.com"
	DefaultUserAgent       = "go-shipcard"
	DefaultTimeout         = 10 * time.Second
	DefaultBranchCacheTTL  = time.Hour
	DefaultBranchCacheSize = 1024
	DefaultMaxCardSize     = 1 << 20

	fallbackBranch = "main"
)

// Client talks to the GitHub REST API and raw content host.
// It is safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	apiBaseURL  string
	rawBaseURL  string
	token       string
	userAgent   string
	maxCardSize int64
	cacheSize   int
	cacheTTL    time.Duration
	branches    *expirable.LRU[string, string]
	renderer    *shipcard.Renderer
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIBaseURL points the client at another REST API endpoint.
func WithAPIBaseURL(u string) Option {
	return func(c *Client) { c.apiBaseURL = strings.TrimRight(u, "/") }
}

// WithRawBaseURL points the client at another raw content host.
func WithRawBaseURL(u string) Option {
	return func(c *Client) { c.rawBaseURL = strings.TrimRight(u, "/") }
}

// WithToken authenticates API requests, raising the rate limit.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithBranchCache sizes the default-branch cache.
func WithBranchCache(size int, ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheSize = size
		c.cacheTTL = ttl
	}
}

// WithMaxCardSize caps how many bytes of a card are read.
func WithMaxCardSize(n int64) Option {
	return func(c *Client) { c.maxCardSize = n }
}

// WithRenderer sets the Renderer used by Load.
func WithRenderer(r *shipcard.Renderer) Option {
	return func(c *Client) { c.renderer = r }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiBaseURL:  DefaultAPIBaseURL,
		rawBaseURL:  shipcard.RawContentBaseURL,
		userAgent:   DefaultUserAgent,
		maxCardSize: DefaultMaxCardSize,
		cacheSize:   DefaultBranchCacheSize,
		cacheTTL:    DefaultBranchCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.renderer == nil {
		c.renderer = shipcard.NewRenderer()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	c.branches = expirable.NewLRU[string, string](c.cacheSize, nil, c.cacheTTL)
	return c
}

// repoResponse is the subset of GET /repos/{owner}/{repo} the client reads.
type repoResponse struct {
	DefaultBranch   string `json:"default_branch"`
	StargazersCount int    `json:"stargazers_count"`
	Description     string `json:"description"`
	License         *struct {
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
}

// DefaultBranch returns the repository's default branch, or "main" when
// GitHub does not report one. Results are cached.
func (c *Client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	key := strings.ToLower(owner + "/" + repo)
	if branch, ok := c.branches.Get(key); ok {
		c.logger.DebugContext(ctx, "default branch cache hit", "repo", key, "branch", branch)
		return branch, nil
	}

	var data repoResponse
	if err := c.getRepo(ctx, owner, repo, &data); err != nil {
		return "", err
	}

	branch := data.DefaultBranch
	if branch == "" {
		branch = fallbackBranch
	}
	c.branches.Add(key, branch)
	c.logger.DebugContext(ctx, "default branch resolved", "repo", key, "branch", branch)
	return branch, nil
}

// RepoMetadata returns stars, license and description. It never fails:
// any error yields the zero value.
func (c *Client) RepoMetadata(ctx context.Context, owner, repo string) shipcard.RepoMetadata {
	var data repoResponse
	if err := c.getRepo(ctx, owner, repo, &data); err != nil {
		c.logger.DebugContext(ctx, "repo metadata unavailable", "repo", owner+"/"+repo, "error", err)
		return shipcard.RepoMetadata{}
	}

	m := shipcard.RepoMetadata{
		Stars:       data.StargazersCount,
		Description: data.Description,
	}
	if data.License != nil {
		m.License = data.License.SPDXID
	}
	return m
}

func (c *Client) getRepo(ctx context.Context, owner, repo string, out *repoResponse) error {
	endpoint := c.apiBaseURL + "/repos/" + owner + "/" + repo
	resp, err := c.do(ctx, endpoint, "application/vnd.github.v3+json", true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := statusError(resp, ErrPrivateRepo); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding repository: %v", ErrFetchFailed, err)
	}
	return nil
}

// FetchCard downloads raw card text from rawURL.
func (c *Client) FetchCard(ctx context.Context, rawURL string) (string, error) {
	resp, err := c.do(ctx, rawURL, "text/plain", false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := statusError(resp, ErrCardNotFound); err != nil {
		return "", err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxCardSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: reading card: %v", ErrFetchFailed, err)
	}
	if int64(len(body)) > c.maxCardSize {
		return "", fmt.Errorf("%w: card exceeds %d bytes", ErrFetchFailed, c.maxCardSize)
	}
	return string(body), nil
}

// CardURL returns the raw URL of t's card at ref on the client's raw host.
func (c *Client) CardURL(t Target, ref string) string {
	return rawURL(c.rawBaseURL, t, ref)
}

func (c *Client) do(ctx context.Context, endpoint, accept string, auth bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)
	if auth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return resp, nil
}

// statusError maps a non-2xx response to a sentinel. A 403 is a rate
// limit only when GitHub says no requests remain.
func statusError(resp *http.Response, notFound error) error {
	switch code := resp.StatusCode; {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return notFound
	case code == http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return ErrRateLimited
		}
		return ErrPrivateRepo
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("%w: status %d", ErrFetchFailed, code)
	}
}
