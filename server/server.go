// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/poiesic/librosearch/search"
)

// ErrSearcherRequired is returned when a server is built without an engine.
var ErrSearcherRequired = errors.New("searcher required")

const defaultRequestTimeout = 120 * time.Second

// Server hosts the HTTP surface over a search engine.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*config)

type config struct {
	addr           string
	requestTimeout time.Duration
	logger         *slog.Logger
}

// WithAddr sets the listen address. Default ":8080".
func WithAddr(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.addr = addr
		}
	}
}

// WithRequestTimeout bounds each request end to end, including the
// collaborator calls.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.requestTimeout = d
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates the HTTP server for the given engine.
func New(searcher *search.Searcher, opts ...Option) (*Server, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	cfg := &config{
		addr:           ":8080",
		requestTimeout: defaultRequestTimeout,
		logger:         slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := &Handler{searcher: searcher, logger: cfg.logger}

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.addr,
			Handler: NewRouter(handler, cfg.requestTimeout),
		},
		logger: cfg.logger,
	}, nil
}

// NewRouter wires the routes and middleware around a handler.
func NewRouter(handler *Handler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)
	if requestTimeout > 0 {
		r.Use(chimiddleware.Timeout(requestTimeout))
	}

	r.Get("/healthcheck", handler.Healthcheck)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", handler.Banner)
		r.Post("/search", handler.Search)
	})

	return r
}

// cors answers preflight requests and opens the API to browser callers.
// The catalog is public, so no origin restriction applies.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
