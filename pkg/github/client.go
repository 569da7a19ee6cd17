// Package github is a minimal GitHub API client covering the three
// operations the crawl needs: repository search, recursive tree listings,
// and raw file content.
//
// Every request goes through the same path: wait on the shared rate
// limiter, check the response cache, then fetch with retry on transient
// failures. Configuration is explicit: callers inject the token, cache,
// and limiter, so tests can point the client at an httptest server.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/agentdex/agentdex/pkg/cache"
	"github.com/agentdex/agentdex/pkg/httputil"
)

const (
	defaultBaseURL = "https://api.github.com"
	httpTimeout    = 15 * time.Second
)

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// non-2xx responses other than 404).
	ErrNetwork = errors.New("network error")
)

// Config carries the client's explicit dependencies. Zero-value fields get
// working defaults from [NewClient]; a nil Cache disables caching.
type Config struct {
	Token   string
	BaseURL string
	Cache   cache.Cache
	TTL     time.Duration
	Limiter *httputil.Limiter
}

// Client provides access to the GitHub API for agent discovery.
// It handles response caching, automatic retries, shared rate limiting,
// and optional bearer authentication.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	limiter *httputil.Limiter
	baseURL string
	headers map[string]string
}

// NewClient creates a GitHub client from cfg. Pass an empty token for
// unauthenticated requests (lower rate limits).
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.TTL == 0 {
		cfg.TTL = cache.TTLDefault
	}
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if cfg.Token != "" {
		headers["Authorization"] = "Bearer " + cfg.Token
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cfg.Cache,
		ttl:     cfg.TTL,
		limiter: cfg.Limiter,
		baseURL: cfg.BaseURL,
		headers: headers,
	}
}

// Tree retrieves the full recursive file tree of a repository.
// A truncated listing is returned as-is; the fetchers treat whatever entries
// arrive as the complete set for this run.
func (c *Client) Tree(ctx context.Context, owner, repo, branch string) ([]TreeEntry, error) {
	if branch == "" {
		branch = "HEAD"
	}
	u := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", c.baseURL, owner, repo, branch)

	var resp treeResponse
	if err := c.getJSON(ctx, u, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tree, nil
}

// RawFile retrieves the raw content of a file via the contents API.
func (c *Client) RawFile(ctx context.Context, owner, repo, branch, path string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, path)
	if branch != "" {
		u += "?ref=" + url.QueryEscape(branch)
	}
	data, err := c.fetch(ctx, u, map[string]string{"Accept": "application/vnd.github.v3.raw"})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SearchRepos fetches one page of repository search results sorted by stars.
func (c *Client) SearchRepos(ctx context.Context, query string, page, perPage int) (*SearchResult, error) {
	u := fmt.Sprintf("%s/search/repositories?q=%s&sort=stars&order=desc&per_page=%d&page=%d",
		c.baseURL, url.QueryEscape(query), perPage, page)

	var resp SearchResult
	if err := c.getJSON(ctx, u, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// getJSON fetches u and JSON-decodes the body into v.
func (c *Client) getJSON(ctx context.Context, u string, headers map[string]string, v any) error {
	data, err := c.fetch(ctx, u, headers)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// fetch returns the body for u, served from cache when possible.
// Transient failures are retried with backoff before reaching the caller.
func (c *Client) fetch(ctx context.Context, u string, headers map[string]string) ([]byte, error) {
	key := "github:" + u
	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	var data []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		data, err = c.doRequest(ctx, u, headers)
		return err
	})
	if err != nil {
		return nil, err
	}

	_ = c.cache.Set(ctx, key, data, c.ttl)
	return data, nil
}

func (c *Client) doRequest(ctx context.Context, u string, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
