// Package server exposes generated briefs and service health over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/newsbrief/internal/brief"
	"github.com/jonesrussell/newsbrief/internal/config"
	"github.com/jonesrussell/newsbrief/internal/datekey"
	"github.com/jonesrussell/newsbrief/internal/logger"
	"github.com/jonesrussell/newsbrief/internal/metrics"
)

// Server serves health, metrics, and brief endpoints.
type Server struct {
	httpServer *http.Server
	logger     logger.Interface
}

// New creates the HTTP server.
func New(
	cfg config.ServerConfig,
	briefs *brief.Store,
	m *metrics.Metrics,
	log logger.Interface,
	debug bool,
) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	registerRoutes(engine, briefs, m)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: log.WithComponent("server"),
	}
}

// registerRoutes wires the HTTP endpoints.
func registerRoutes(engine *gin.Engine, briefs *brief.Store, m *metrics.Metrics) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	engine.GET("/briefs/:date", func(c *gin.Context) {
		key, err := datekey.Parse(c.Param("date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYYMMDD"})
			return
		}

		content, err := briefs.Read(key)
		if err != nil {
			if errors.Is(err, brief.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no brief for " + key.String()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read brief"})
			return
		}

		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
	})

	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "address", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(shutdownCtx)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
