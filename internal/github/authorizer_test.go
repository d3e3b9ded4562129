package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebot/rangediff/internal/httpclient"
)

func newTestHTTPClient(t *testing.T) *httpclient.HTTPClient {
	t.Helper()
	hc, err := httpclient.NewHTTPClient(httpclient.DefaultHTTPClientConfig(), zerolog.Nop())
	require.NoError(t, err)
	return hc
}

func TestAuthorizer_NoTeamAPIAllowsEverything(t *testing.T) {
	a := NewAuthorizer(newTestHTTPClient(t), AuthorizerConfig{}, zerolog.Nop())

	ok, err := a.IsAuthorized(context.Background(), Repository{Owner: "anyone", Name: "anything"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthorizer_ChecksTeamRepos(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "/repos.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"repos": {"rust-lang": [{"name": "rust"}, {"name": "cargo"}]}}`))
	}))
	defer ts.Close()

	a := NewAuthorizer(newTestHTTPClient(t), AuthorizerConfig{TeamAPIURL: ts.URL}, zerolog.Nop())
	ctx := context.Background()

	ok, err := a.IsAuthorized(ctx, Repository{Owner: "rust-lang", Name: "rust"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.IsAuthorized(ctx, Repository{Owner: "rust-lang", Name: "not-ours"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = a.IsAuthorized(ctx, Repository{Owner: "unknown-org", Name: "rust"})
	require.NoError(t, err)
	assert.False(t, ok)

	// The dataset is cached, so three checks cost one fetch.
	assert.Equal(t, int64(1), calls.Load())
}

func TestAuthorizer_PropagatesFetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	a := NewAuthorizer(newTestHTTPClient(t), AuthorizerConfig{TeamAPIURL: ts.URL}, zerolog.Nop())

	_, err := a.IsAuthorized(context.Background(), Repository{Owner: "rust-lang", Name: "rust"})
	assert.Error(t, err)
}
