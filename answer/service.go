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


package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/hukumpedia/ai"
	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/search"
)

// Retriever returns ranked articles for a query.
// *search.Retriever satisfies it.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) (*search.Retrieval, error)
}

// Response is the outcome of a question.
type Response struct {
	Question string               `json:"question"`
	Results  []*core.SearchResult `json:"results"`
	Decision search.Decision      `json:"-"`

	// Answer is the composed answer. Empty when Fallback is set.
	Answer string `json:"answer,omitempty"`

	// Fallback is true when no answer could be composed and callers should
	// show Results instead.
	Fallback bool `json:"fallback"`

	// ComposeErr is the reason for the fallback.
	ComposeErr error `json:"-"`
}

// Service answers legal questions by retrieving articles and handing them to
// an AnswerComposer.
type Service struct {
	retriever Retriever
	composer  ai.AnswerComposer
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a Service. composer may be nil, in which case every
// response falls back to raw results.
func NewService(retriever Retriever, composer ai.AnswerComposer, opts ...Option) (*Service, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	s := &Service{
		retriever: retriever,
		composer:  composer,
		logger:    slog.Default().With("component", "answer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Ask retrieves up to topK articles for question and composes an answer from
// them. Retrieval errors are returned. Composer errors are not: the response
// is marked as a fallback carrying the raw results.
func (s *Service) Ask(ctx context.Context, question string, topK int) (*Response, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	retrieval, err := s.retriever.Retrieve(ctx, question, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieving articles: %w", err)
	}

	resp := &Response{
		Question: question,
		Results:  retrieval.Results,
		Decision: retrieval.Decision,
	}

	if s.composer == nil {
		resp.Fallback = true
		resp.ComposeErr = ErrNoComposer
		return resp, nil
	}

	answer, err := s.composer.ComposeAnswer(ctx, question, BuildContext(retrieval.Results))
	if err != nil {
		s.logger.Warn("answer composition failed, returning raw results", "err", err)
		resp.Fallback = true
		resp.ComposeErr = err
		return resp, nil
	}

	resp.Answer = answer
	return resp, nil
}
