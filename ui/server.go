package ui

import (
	"context"
	"errors"
	"net/http"
	"time"

	"resultdash/domain/dataset"
	"resultdash/internal"
	"resultdash/internal/dashboard"

	"github.com/gin-gonic/gin"
)

// Server serves view-state for one immutable dataset over HTTP
type Server struct {
	router  *gin.Engine
	dataset *dataset.Dataset
	options dashboard.Options
	logger  *internal.Logger
}

// NewServer creates the HTTP API for ds
func NewServer(ds *dataset.Dataset, opts dashboard.Options, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  gin.New(),
		dataset: ds,
		options: opts,
		logger:  logger.With("ui"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	if s.logger.GetLevel() >= internal.LogLevelDebug {
		s.router.Use(gin.Logger())
	}
	s.router.Use(s.datasetETag)
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/report", s.handleReport)

	api := s.router.Group("/api")
	api.GET("/categories", s.handleCategories)
	api.GET("/records", s.handleRecords)
	api.GET("/counts", s.handleCounts)
	api.GET("/median", s.handleMedian)
	api.GET("/view", s.handleView)

	s.router.NoRoute(s.handleNotFound)
}

// datasetETag tags every response with the dataset fingerprint. The data
// never changes while the process runs.
func (s *Server) datasetETag(c *gin.Context) {
	c.Header("ETag", `"`+s.dataset.ID().String()+`"`)
	c.Next()
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving %d records on http://%s", s.dataset.Len(), addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down API server")
		return srv.Shutdown(shutdownCtx)
	}
}
