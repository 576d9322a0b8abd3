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


// Package api exposes retrieval and question answering over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/poiesic/hukumpedia/answer"
	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/search"
)

// Backend answers the requests served by the API. *hukumpedia.Session satisfies it.
type Backend interface {
	Retrieve(ctx context.Context, query string, topK int) (*search.Retrieval, error)
	Ask(ctx context.Context, question string, topK int) (*answer.Response, error)
	Chapters() []*core.Chapter
}

// Server is the HTTP API server.
type Server struct {
	router         chi.Router
	backend        Backend
	validate       *validator.Validate
	allowedOrigins []string
	timeout        time.Duration
	log            *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithAllowedOrigins sets the CORS origins. Default allows any localhost port.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithTimeout bounds the handling time of a request. Default is 2 minutes,
// answer composition on a local model is slow.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// NewServer creates and configures the HTTP server.
func NewServer(backend Backend, opts ...Option) *Server {
	s := &Server{
		backend:        backend,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		allowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		timeout:        2 * time.Minute,
		log:            slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Timeout(s.timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/chapters", s.handleChapters)
		r.Post("/search", s.handleSearch)
		r.Post("/ask", s.handleAsk)
	})

	s.router = r
}
