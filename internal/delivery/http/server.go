package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

type Server struct {
	mu         sync.Mutex
	httpServer *http.Server
}

func (s *Server) Run(addr string, handler http.Handler) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:           addr,
		Handler:        handler,
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()
	return srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
