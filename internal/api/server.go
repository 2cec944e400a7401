package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hostcfg/podnet/internal/integration"
	"github.com/hostcfg/podnet/internal/log"
)

// Server represents the API server.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new API server bound to bindAddr.
func NewServer(bindAddr, configPath string, engine *integration.Engine) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         bindAddr,
			Handler:      NewRouter(engine, configPath),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start starts the API server. It blocks until the server stops.
func (s *Server) Start() error {
	log.Infof("[API] Starting server on %s", s.httpServer.Addr)
	log.Infof("[API] Example: curl http://%s/api/v1/zones", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Stop gracefully stops the API server.
func (s *Server) Stop(ctx context.Context) error {
	log.Infof("[API] Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}
