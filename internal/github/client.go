package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/forgebot/rangediff/internal/common/errorwrapper"
	"github.com/forgebot/rangediff/internal/httpclient"
)

// DefaultAPIBaseURL is the public GitHub REST endpoint.
const DefaultAPIBaseURL = "https://api.github.com"

// mergeBaseCacheTTL bounds how long a resolved merge base is reused.
// Heads are usually fixed SHAs, but the reference branch moves, so the
// entry must eventually expire.
const mergeBaseCacheTTL = 10 * time.Minute

// Client is a minimal GitHub REST client covering the compare endpoint.
type Client struct {
	http       *httpclient.HTTPClient
	baseURL    string
	token      string
	mergeBases *gocache.Cache
	logger     zerolog.Logger
}

// ClientConfig holds the GitHub client settings.
type ClientConfig struct {
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	Token   string `json:"token,omitempty" yaml:"token,omitempty"`
}

// NewDefaultClientConfig creates default GitHub client configuration.
func NewDefaultClientConfig() ClientConfig {
	return ClientConfig{BaseURL: DefaultAPIBaseURL}
}

// NewClient creates a GitHub client on top of the shared HTTP client.
func NewClient(http *httpclient.HTTPClient, cfg ClientConfig, logger zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &Client{
		http:       http,
		baseURL:    baseURL,
		token:      cfg.Token,
		mergeBases: gocache.New(mergeBaseCacheTTL, 2*mergeBaseCacheTTL),
		logger:     logger.With().Str("component", "GitHubClient").Logger(),
	}
}

// Compare fetches the comparison between base and head: the merge base
// commit plus the unified-diff patch of every touched file.
func (c *Client) Compare(ctx context.Context, repo Repository, base, head string) (*Compare, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/compare/%s...%s",
		c.baseURL,
		url.PathEscape(repo.Owner),
		url.PathEscape(repo.Name),
		url.PathEscape(base),
		url.PathEscape(head))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, errorwrapper.WrapError(err, fmt.Sprintf("failed to compare %s and %s in %s", base, head, repo))
	}

	var compare Compare
	if err := json.Unmarshal(body, &compare); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to decode compare response")
	}

	c.logger.Debug().
		Str("repo", repo.String()).
		Str("base", base).
		Str("head", head).
		Int("files", len(compare.Files)).
		Str("merge_base", compare.MergeBaseCommit.SHA).
		Msg("Fetched comparison")

	return &compare, nil
}

// ResolveMergeBase finds the commit where head diverged from the
// reference branch. Only the merge base commit of the compare is read;
// the file patches in the response are against the branch tip rather
// than the merge base and are discarded.
func (c *Client) ResolveMergeBase(ctx context.Context, repo Repository, referenceBranch, head string) (string, error) {
	cacheKey := repo.String() + "/" + referenceBranch + "..." + head
	if cached, ok := c.mergeBases.Get(cacheKey); ok {
		return cached.(string), nil
	}

	compare, err := c.Compare(ctx, repo, referenceBranch, head)
	if err != nil {
		return "", errorwrapper.WrapError(err, fmt.Sprintf("failed to resolve merge base of %s against %s", head, referenceBranch))
	}
	if compare.MergeBaseCommit.SHA == "" {
		return "", errorwrapper.NewError("compare of %s...%s returned no merge base", referenceBranch, head)
	}

	c.mergeBases.Set(cacheKey, compare.MergeBaseCommit.SHA, mergeBaseCacheTTL)
	return compare.MergeBaseCommit.SHA, nil
}

// get performs one authenticated GET and returns the body for 2xx.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}

	resp, err := c.http.Do(&httpclient.HTTPRequest{
		URL:     endpoint,
		Method:  "GET",
		Headers: headers,
		Context: ctx,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, "unexpected status from GitHub API", endpoint)
	}

	return resp.Body, nil
}
