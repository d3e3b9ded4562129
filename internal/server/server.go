package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/forgebot/rangediff/internal/github"
	"github.com/forgebot/rangediff/internal/rangediff"
)

// Server serves the range-diff routes.
type Server struct {
	cfg        ServerConfig
	github     *github.Client
	authorizer *github.Authorizer
	renderer   *rangediff.Renderer
	logger     zerolog.Logger
}

// New creates a server wired to its collaborators.
func New(cfg ServerConfig, gh *github.Client, authorizer *github.Authorizer, renderer *rangediff.Renderer, logger zerolog.Logger) *Server {
	return &Server{
		cfg:        cfg,
		github:     gh,
		authorizer: authorizer,
		renderer:   renderer,
		logger:     logger.With().Str("component", "Server").Logger(),
	}
}

// Routes builds the request multiplexer.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gh-range-diff/{owner}/{repo}/{basehead}", s.handleRangeDiff)
	mux.HandleFunc("GET /gh-range-diff/{owner}/{repo}/{oldbasehead}/{newbasehead}", s.handleRangesDiff)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("listen_addr", s.cfg.ListenAddr).Msg("HTTP server starting")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("HTTP server shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
