package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/marmos91/kvfs/internal/logger"
	"github.com/marmos91/kvfs/pkg/vfs"
)

// Server is the HTTP gateway server.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a gateway server for the given filesystem. A positive
// maxBody caps uploaded payload sizes; zero leaves uploads unlimited.
func NewServer(listen string, fs *vfs.Filesystem, requestTimeout time.Duration, maxBody int64) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              listen,
			Handler:           NewRouter(fs, requestTimeout, maxBody),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	logger.Info("http gateway listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("http gateway shutting down")
	return s.httpServer.Shutdown(ctx)
}
