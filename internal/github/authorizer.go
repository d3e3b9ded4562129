package github

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/forgebot/rangediff/internal/common/errorwrapper"
	"github.com/forgebot/rangediff/internal/httpclient"
)

const teamReposCacheKey = "team-repos"

// AuthorizerConfig configures the repository authorization check.
type AuthorizerConfig struct {
	// TeamAPIURL points at the team-data endpoint serving repos.json.
	TeamAPIURL string `json:"team_api_url,omitempty" yaml:"team_api_url,omitempty" validate:"omitempty,url"`
	// CacheTTL bounds how long a fetched repo set is reused.
	CacheTTL time.Duration `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`
}

// NewDefaultAuthorizerConfig creates default authorizer configuration.
func NewDefaultAuthorizerConfig() AuthorizerConfig {
	return AuthorizerConfig{
		CacheTTL: 10 * time.Minute,
	}
}

// Authorizer answers whether a repository belongs to the project's
// authorized repo set, as published by the team-data API. The dataset
// changes rarely, so responses are cached with a TTL.
type Authorizer struct {
	http   *httpclient.HTTPClient
	apiURL string
	cache  *gocache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewAuthorizer creates an authorizer backed by the team-data API.
func NewAuthorizer(http *httpclient.HTTPClient, cfg AuthorizerConfig, logger zerolog.Logger) *Authorizer {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Authorizer{
		http:   http,
		apiURL: cfg.TeamAPIURL,
		cache:  gocache.New(ttl, 2*ttl),
		ttl:    ttl,
		logger: logger.With().Str("component", "RepoAuthorizer").Logger(),
	}
}

// IsAuthorized reports whether owner/repo is part of the authorized
// set. With no team API configured every repository is allowed, which
// is the local-development mode.
func (a *Authorizer) IsAuthorized(ctx context.Context, repo Repository) (bool, error) {
	if a.apiURL == "" {
		return true, nil
	}

	doc, err := a.teamRepos(ctx)
	if err != nil {
		return false, err
	}

	repos, ok := doc.Repos[repo.Owner]
	if !ok {
		return false, nil
	}
	for _, r := range repos {
		if r.Name == repo.Name {
			return true, nil
		}
	}
	return false, nil
}

// teamRepos returns the cached repos document, fetching on miss.
func (a *Authorizer) teamRepos(ctx context.Context) (*teamReposDoc, error) {
	if cached, ok := a.cache.Get(teamReposCacheKey); ok {
		return cached.(*teamReposDoc), nil
	}

	resp, err := a.http.Do(&httpclient.HTTPRequest{
		URL:     a.apiURL + "/repos.json",
		Method:  "GET",
		Context: ctx,
	})
	if err != nil {
		return nil, errorwrapper.WrapError(err, "unable to retrieve team repos")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, "unexpected status from team API", a.apiURL+"/repos.json")
	}

	var doc teamReposDoc
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to decode team repos document")
	}

	a.cache.Set(teamReposCacheKey, &doc, a.ttl)
	a.logger.Debug().Int("orgs", len(doc.Repos)).Msg("Refreshed team repos dataset")

	return &doc, nil
}
