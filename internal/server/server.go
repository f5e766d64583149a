// Package server exposes the cleaning engine over HTTP for the review UI.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/txclean/internal/mappings"
	"github.com/cleared-dev/txclean/internal/model"
	"github.com/cleared-dev/txclean/internal/pipeline"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	MappingsPath   string
	AllowedOrigins []string
	Workers        int
}

// Server holds the router and the persisted mapping list.
type Server struct {
	router    *gin.Engine
	processor *pipeline.Processor
	logger    *log.Logger

	mu           sync.RWMutex
	mappingsPath string
	mappings     []model.Mapping
}

// New loads the mapping file and builds the router.
func New(opts Options, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	list, err := mappings.Load(opts.MappingsPath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		processor:    pipeline.New(opts.Workers, logger),
		logger:       logger,
		mappingsPath: opts.MappingsPath,
		mappings:     list,
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/healthz", s.health)
	api := r.Group("/api")
	{
		api.POST("/clean", s.clean)
		api.POST("/explain", s.explain)
		api.GET("/mappings", s.getMappings)
		api.PUT("/mappings", s.putMappings)
	}
	s.router = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) snapshot() []model.Mapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Mapping, len(s.mappings))
	copy(out, s.mappings)
	return out
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
