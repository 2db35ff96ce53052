package server

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/freightpulse/freightpulse/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Server struct {
	Engine *gin.Engine
	Addr   string
	logger zerolog.Logger
	checks map[string]HealthChecker
}

// HealthChecker is an interface for components that can report their health status.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Options configures the HTTP server.
type Options struct {
	Addr          string
	Mode          string // debug | release
	MaxBodySizeMB int
	Logger        zerolog.Logger
	// Checks are probed by /health, keyed by component name.
	Checks map[string]HealthChecker
}

func New(opts Options) *Server {
	if opts.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(opts.Logger))
	if opts.MaxBodySizeMB > 0 {
		r.Use(limitBody(int64(opts.MaxBodySizeMB) << 20))
	}

	s := &Server{
		Engine: r,
		Addr:   opts.Addr,
		logger: opts.Logger,
		checks: opts.Checks,
	}

	r.GET("/health", s.healthHandler)

	return s
}

func limitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	components := gin.H{}
	healthy := true
	for _, name := range names {
		if err := s.checks[name].Ping(ctx); err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("component", name).Msg("[Health] Check failed")
			components[name] = "unreachable"
			healthy = false
			continue
		}
		components[name] = "connected"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "unhealthy",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"components": components,
	})
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info().Str("address", s.Addr).Msg("[Server] Starting HTTP Server...")

	go func() {
		<-ctx.Done()
		s.logger.Info().Msg("[Server] Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("[Server] HTTP Server forced to shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
