// Package server hosts the interactive dashboard and its JSON API.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/Ahananian1/air-quality-explorer/internal/catalog"
	"github.com/Ahananian1/air-quality-explorer/internal/config"
	"github.com/Ahananian1/air-quality-explorer/internal/dataset"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server renders views of one dataset file. The dataset itself lives in
// the shared cache and is never mutated by a request.
type Server struct {
	cfg    *config.Global
	cache  *dataset.Cache
	engine *gin.Engine
}

// New builds the router for cfg.DataPath backed by cache.
func New(cfg *config.Global, cache *dataset.Cache) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestID(), accessLog(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	s := &Server{cfg: cfg, cache: cache, engine: r}
	r.GET("/", s.index)
	r.GET("/healthz", s.health)

	charts := r.Group("/chart")
	charts.GET("/top.svg", s.topChart)
	charts.GET("/histogram.svg", s.histogramChart)
	charts.GET("/map.svg", s.mapChart)

	r.GET("/export.csv", s.exportCSV)
	r.GET("/export.xlsx", s.exportXLSX)

	api := r.Group("/api")
	api.GET("/view", s.apiView)
	api.GET("/summary", s.apiSummary)
	api.GET("/options", s.apiOptions)
	return s, nil
}

// Handler returns the router wrapped with CORS for the configured origins.
func (s *Server) Handler() http.Handler {
	if len(s.cfg.CORSOrigins) == 0 {
		return s.engine
	}
	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Origin", requestIDHeader},
		ExposedHeaders: []string{"Content-Length", "Content-Type", "Content-Disposition", requestIDHeader},
		MaxAge:         86400,
	})
	return c.Handler(s.engine)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
// within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	serverErrors := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("dashboard listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err, ok := <-serverErrors:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := time.Duration(s.cfg.ShutdownTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	log.Info("shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// load returns the cached dataset after checking its schema. status is the
// HTTP status matching the failure.
func (s *Server) load() (*dataset.Dataset, int, error) {
	ds, err := s.cache.Load(s.cfg.DataPath)
	if err != nil {
		return ds, http.StatusServiceUnavailable, err
	}
	if err := dataset.Validate(ds, catalog.RequiredColumns); err != nil {
		return ds, http.StatusUnprocessableEntity, err
	}
	return ds, http.StatusOK, nil
}
