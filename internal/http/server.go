// Package http serves the expenses JSON API used by the client.
package http

import (
	"context"
	"net/http"
	"time"

	"expensetracker/internal/backend"
	applog "expensetracker/internal/log"
)

// maxBodyBytes bounds request bodies on POST and PUT.
const maxBodyBytes = 1 << 20

type Server struct {
	http.Server
	repo    backend.Repository
	logger  *applog.Logger
	started time.Time
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, repo backend.Repository, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.Discard()
	}
	s := &Server{
		repo:    repo,
		logger:  logger.WithComponent(applog.ComponentHTTP),
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /expenses", s.handleListExpenses)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("PUT /expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /expenses/{id}", s.handleDeleteExpense)

	var h http.Handler = apiHeaders(mux)
	h = applog.AccessLogMiddleware()(h)
	h = applog.RequestIDMiddleware()(h)
	h = applog.Middleware(s.logger)(h)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", applog.FieldOperation, applog.OpShutdown)
	return s.Server.Shutdown(ctx)
}
