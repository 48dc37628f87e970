package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/nmoreno/bazaar-backend/pkg/logger"
)

const shutdownGrace = 15 * time.Second

// Server runs the HTTP listener and drains in-flight requests on shutdown.
type Server struct {
	httpServer *http.Server
	logg       *logger.Logger
}

func NewServer(addr string, handler http.Handler, logg *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logg: logg,
	}
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if s.logg != nil {
		s.logg.Info(context.Background(), "draining http server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var combined error
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		combined = multierr.Append(combined, err)
	}
	if err := <-errCh; err != nil {
		combined = multierr.Append(combined, err)
	}
	return combined
}
