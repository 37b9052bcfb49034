// Package server implements the photocal preview server: a small HTTP
// API over the build pipeline, so month pages and map artifacts can be
// inspected in a browser while editing manifests and locations.
//
// Pages compose on demand through the shared pipeline runner, which
// means the server and the CLI always agree on what a month looks
// like, and the cache makes repeated previews cheap.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sarefo/calendar/pkg/config"
	apperrors "github.com/sarefo/calendar/pkg/errors"
	"github.com/sarefo/calendar/pkg/pipeline"
)

// Server is the preview server.
type Server struct {
	cfg    *config.Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds a server over a configured runner. The config supplies
// the input paths every on-demand build uses and the listen address.
func New(cfg *config.Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:    cfg,
		runner: runner,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/months", s.handleMonths)
		r.Get("/months/{key}", s.handleMonth)
		r.Get("/months/{key}/map.svg", s.handleMonthMap)
	})
	if cfg.Paths.OutputDir != "" {
		fileServer := http.StripPrefix("/files/", http.FileServer(http.Dir(cfg.Paths.OutputDir)))
		r.Get("/files/*", func(w http.ResponseWriter, r *http.Request) {
			if err := apperrors.ValidatePath(chi.URLParam(r, "*")); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	}

	s.router = r
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// buildOptions maps the server config onto pipeline options for one
// month. Query parameters refine it per request.
func (s *Server) buildOptions(year int, month int, lang string, refresh bool) pipeline.Options {
	opts := pipeline.Options{
		Year:           year,
		Month:          month,
		Language:       lang,
		WebsiteURL:     s.cfg.Calendar.WebsiteURL,
		Manifest:       s.cfg.Paths.Manifest,
		PhotosDir:      s.cfg.Paths.PhotosDir,
		BaseMap:        s.cfg.Paths.BaseMap,
		LocationsIndex: s.cfg.Paths.LocationsIndex,
		Observations:   s.cfg.Paths.Observations,
		Refresh:        refresh,
		Logger:         s.logger,
	}
	if opts.Language == "" {
		opts.Language = s.cfg.Calendar.Language
	}
	return opts
}
