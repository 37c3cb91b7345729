package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// shutdownTimeout bounds the graceful drain on context cancellation.
const shutdownTimeout = 5 * time.Second

// Server hosts the arena HTTP API.
type Server struct {
	httpServer *http.Server
}

// NewServer builds a configured API server.
func NewServer(addr string, handler http.Handler) (*Server, error) {
	if addr == "" {
		return nil, errors.New("http address is required")
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	serveErr := make(chan error, 1)
	log.Printf("arena api listening on %s", s.httpServer.Addr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
