package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebot/rangediff/internal/github"
	"github.com/forgebot/rangediff/internal/httpclient"
	"github.com/forgebot/rangediff/internal/rangediff"
)

// fakeCompare is one canned compare response keyed by "base...head".
type fakeCompare struct {
	mergeBase string
	files     []github.CompareFile
}

// newTestServer builds a Server whose GitHub client talks to a fake
// compare endpoint.
func newTestServer(t *testing.T, compares map[string]fakeCompare) *Server {
	t.Helper()

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "/repos/rust-lang/rust/compare/"
		if !strings.HasPrefix(r.URL.Path, prefix) {
			http.NotFound(w, r)
			return
		}
		// Path tail is "base...head".
		key := r.URL.Path[len(prefix):]
		canned, ok := compares[key]
		if !ok {
			http.Error(w, "unknown compare "+key, http.StatusNotFound)
			return
		}

		resp := map[string]any{
			"merge_base_commit": map[string]string{"sha": canned.mergeBase},
			"files":             canned.files,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(apiServer.Close)

	logger := zerolog.Nop()
	hc, err := httpclient.NewHTTPClient(httpclient.DefaultHTTPClientConfig(), logger)
	require.NoError(t, err)

	ghClient := github.NewClient(hc, github.ClientConfig{BaseURL: apiServer.URL}, logger)
	authorizer := github.NewAuthorizer(hc, github.NewDefaultAuthorizerConfig(), logger)
	renderer := rangediff.NewRenderer(logger)

	cfg := NewDefaultServerConfig()
	return New(cfg, ghClient, authorizer, renderer, logger)
}

func TestHandleRangeDiff_MalformedRange(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/gh-range-diff/rust-lang/rust/not-a-range")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleRangesDiff_ExplicitBases(t *testing.T) {
	compares := map[string]fakeCompare{
		"base1...head1": {
			mergeBase: "base1",
			files:     []github.CompareFile{{Filename: "lib.rs", Patch: "@@ -1,1 +1,1 @@\n-foo\n+bar\n"}},
		},
		"base2...head2": {
			mergeBase: "base2",
			files:     []github.CompareFile{{Filename: "lib.rs", Patch: "@@ -4,1 +6,1 @@\n-foo\n+baz\n"}},
		},
	}
	srv := newTestServer(t, compares)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/gh-range-diff/rust-lang/rust/base1..head1/base2..head2")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "immutable")
	assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "lib.rs")
	assert.Contains(t, html, "range-diff of base1")
}

func TestHandleRangeDiff_AutoDiscoveredBases(t *testing.T) {
	rebaseOnly := "@@ -1,1 +1,1 @@\n-foo\n+bar\n"
	compares := map[string]fakeCompare{
		// Merge-base discovery against the reference branch.
		"master...head1": {mergeBase: "mb1"},
		"master...head2": {mergeBase: "mb2"},
		// The actual per-side comparisons.
		"mb1...head1": {
			mergeBase: "mb1",
			files:     []github.CompareFile{{Filename: "lib.rs", Patch: rebaseOnly}},
		},
		"mb2...head2": {
			mergeBase: "mb2",
			files:     []github.CompareFile{{Filename: "lib.rs", Patch: "@@ -9,1 +9,1 @@\n-foo\n+bar\n"}},
		},
	}
	srv := newTestServer(t, compares)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/gh-range-diff/rust-lang/rust/head1..head2")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// Identical patches modulo hunk headers: a pure rebase.
	assert.Contains(t, string(body), "No differences.")
}

func TestHandleRangeDiff_CollaboratorFailure(t *testing.T) {
	// Compare endpoint knows nothing: resolution must fail the request.
	srv := newTestServer(t, map[string]fakeCompare{})
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/gh-range-diff/rust-lang/rust/a..b/c..d")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
