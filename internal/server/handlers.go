package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/forgebot/rangediff/internal/common/errorwrapper"
	"github.com/forgebot/rangediff/internal/github"
	"github.com/forgebot/rangediff/internal/rangediff"
)

// side holds one resolved comparison range: its base, head and the
// fetched compare data.
type side struct {
	base    string
	head    string
	compare *github.Compare
}

// handleRangeDiff serves OLDHEAD..NEWHEAD requests: both bases are
// discovered by resolving the merge base against the reference branch.
func (s *Server) handleRangeDiff(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	repoName := r.PathValue("repo")
	basehead := r.PathValue("basehead")

	oldHead, newHead, ok := strings.Cut(basehead, "..")
	if !ok {
		s.badRequest(w, fmt.Sprintf("`%s` is not in the form `base..head`", basehead))
		return
	}

	repo := github.Repository{Owner: owner, Name: repoName}
	if !s.authorize(w, r.Context(), repo) {
		return
	}

	resolve := func(ctx context.Context, head string) (side, error) {
		base, err := s.github.ResolveMergeBase(ctx, repo, s.cfg.ReferenceBranch, head)
		if err != nil {
			return side{}, err
		}
		compare, err := s.github.Compare(ctx, repo, base, head)
		if err != nil {
			return side{}, err
		}
		return side{base: base, head: head, compare: compare}, nil
	}

	s.resolveAndRender(w, r, repo, oldHead, newHead, resolve)
}

// handleRangesDiff serves OLDBASE..OLDHEAD / NEWBASE..NEWHEAD requests
// with both bases explicit.
func (s *Server) handleRangesDiff(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	repoName := r.PathValue("repo")

	oldBase, oldHead, ok := strings.Cut(r.PathValue("oldbasehead"), "..")
	if !ok {
		s.badRequest(w, fmt.Sprintf("`%s` is not in the form `base..head`", r.PathValue("oldbasehead")))
		return
	}
	newBase, newHead, ok := strings.Cut(r.PathValue("newbasehead"), "..")
	if !ok {
		s.badRequest(w, fmt.Sprintf("`%s` is not in the form `base..head`", r.PathValue("newbasehead")))
		return
	}

	repo := github.Repository{Owner: owner, Name: repoName}
	if !s.authorize(w, r.Context(), repo) {
		return
	}

	bases := map[string]string{oldHead: oldBase, newHead: newBase}
	resolve := func(ctx context.Context, head string) (side, error) {
		base := bases[head]
		compare, err := s.github.Compare(ctx, repo, base, head)
		if err != nil {
			return side{}, err
		}
		return side{base: base, head: head, compare: compare}, nil
	}

	s.resolveAndRender(w, r, repo, oldHead, newHead, resolve)
}

// authorize verifies repository membership before any compare call and
// writes the response itself when the request may not proceed.
func (s *Server) authorize(w http.ResponseWriter, ctx context.Context, repo github.Repository) bool {
	authorized, err := s.authorizer.IsAuthorized(ctx, repo)
	if err != nil {
		s.serverError(w, err)
		return false
	}
	if !authorized {
		s.badRequest(w, fmt.Sprintf("repository `%s` is not part of the authorized repositories", repo))
		return false
	}
	return true
}

// resolveAndRender fetches the two sides concurrently, joins them, and
// renders the document. The sides share no state, so either failure
// aborts the whole request before any output is produced.
func (s *Server) resolveAndRender(w http.ResponseWriter, r *http.Request, repo github.Repository, oldHead, newHead string, resolve func(context.Context, string) (side, error)) {
	ctx := r.Context()

	var (
		wg               sync.WaitGroup
		oldSide, newSide side
		oldErr, newErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		oldSide, oldErr = resolve(ctx, oldHead)
	}()
	go func() {
		defer wg.Done()
		newSide, newErr = resolve(ctx, newHead)
	}()
	wg.Wait()

	if oldErr != nil {
		s.serverError(w, oldErr)
		return
	}
	if newErr != nil {
		s.serverError(w, newErr)
		return
	}

	params := rangediff.DocumentParams{
		Owner:   repo.Owner,
		Repo:    repo.Name,
		OldBase: oldSide.base,
		OldHead: oldSide.head,
		NewBase: newSide.base,
		NewHead: newSide.head,
		Host:    r.Host,
	}

	var buf bytes.Buffer
	changed, err := s.renderer.RenderDocument(&buf, params, toFiles(oldSide.compare.Files), toFiles(newSide.compare.Files))
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.logger.Info().
		Str("repo", repo.String()).
		Str("old", oldSide.base+".."+oldSide.head).
		Str("new", newSide.base+".."+newSide.head).
		Int("files_changed", changed).
		Msg("Served range-diff")

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	// Both endpoints of each range are fixed revisions, so the document
	// never changes and can be cached aggressively.
	h.Set("Cache-Control", "public, max-age=15552000, immutable")
	h.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func toFiles(files []github.CompareFile) []rangediff.File {
	out := make([]rangediff.File, len(files))
	for i, f := range files {
		out[i] = rangediff.File{Filename: f.Filename, Patch: f.Patch}
	}
	return out
}

func (s *Server) badRequest(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusBadRequest)
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	if errorwrapper.IsUserInputError(err) {
		s.badRequest(w, err.Error())
		return
	}
	s.logger.Error().Err(err).Msg("Request failed")
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
