// Package http exposes the build output of a theme to the site during
// development.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/3-lines-studio/prism/internal/config"
)

type Server struct {
	cfg    config.Config
	router chi.Router
}

// NewServer mounts the output and components directories of the theme, both
// at the site root and below the theme base path.
func NewServer(cfg config.Config) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	root := cfg.AbsRoot()
	for _, dir := range []string{cfg.OutDir, cfg.ComponentsDir} {
		prefix := "/" + strings.Trim(filepath.ToSlash(dir), "/")
		handler := NewAssetHandler(filepath.Join(root, dir))
		for _, mount := range mountPoints(cfg.Base, prefix) {
			r.Handle(mount+"/*", http.StripPrefix(mount, handler))
		}
	}

	return &Server{cfg: cfg, router: r}
}

func mountPoints(base, prefix string) []string {
	mounts := []string{prefix}
	base = strings.TrimSuffix(base, "/")
	if base != "" {
		mounts = append(mounts, path.Join(base, prefix))
	}
	return mounts
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe blocks until ctx is done or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("dev server listening", "origin", s.cfg.Server.Origin())
		var err error
		if s.cfg.Server.TLS() {
			err = srv.ListenAndServeTLS(s.cfg.Path(s.cfg.Server.CertFile), s.cfg.Path(s.cfg.Server.KeyFile))
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("dev server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
