// Package httpapi exposes the production-mix optimizer over HTTP: routing,
// request/response serialization, and the mapping from solve outcomes to
// HTTP status codes. The routing core has no HTTP surface; it is
// consumed as a library.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"optiserve/internal/config"
	"optiserve/internal/logger"
	"optiserve/internal/metrics"
	"optiserve/internal/production"
)

// NewRouter builds the full handler chain: routing plus the
// CORS/Recover/RequestID/Logging/Metrics/Tracing middleware stack
// (recovery outermost, tracing innermost, closest to the handler).
func NewRouter(cfg *config.Config, service *production.Service) http.Handler {
	solveTimeout := time.Duration(cfg.Optimizer.DefaultTimeoutSecs) * time.Second
	h := NewHandlers(service, solveTimeout)
	r := mux.NewRouter()

	base := cfg.HTTP.BasePath
	if base == "" {
		base = "/production"
	}

	r.Methods(http.MethodGet).Path("/optimizers").HandlerFunc(h.ListOptimizers)
	r.Methods(http.MethodGet).Path(base + "/optimizers").HandlerFunc(h.ListOptimizers)
	r.Methods(http.MethodPost).Path(base + "/optimize/{optimizer_type}").HandlerFunc(h.Optimize)
	r.Methods(http.MethodPost).Path(base + "/basic-optimization").HandlerFunc(h.BasicOptimization)
	r.Methods(http.MethodPost).Path(base + "/demand-constrained").HandlerFunc(h.DemandConstrained)

	if cfg.Metrics.Enabled {
		r.Methods(http.MethodGet).Path(cfg.Metrics.Path).Handler(metrics.Handler())
	}
	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(healthz)

	var handler http.Handler = r
	handler = Tracing(handler)
	handler = Metrics(handler)
	handler = Logging(handler)
	handler = RequestID(handler)
	handler = CORS(cfg.HTTP.CORS)(handler)
	handler = Recover(handler)
	return handler
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Server wraps the configured http.Server with a graceful-shutdown
// lifecycle built on the ListenAndServe/Shutdown pair.
type Server struct {
	httpServer *http.Server
	config     *config.Config
}

// NewServer builds a Server around the given router and HTTP config.
func NewServer(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
		},
	}
}

// Run starts the HTTP listener and blocks until ctx is cancelled, then
// drains in-flight requests within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.HTTP.ShutdownTimeout)*time.Second)
	defer cancel()

	logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(shutdownCtx)
}
