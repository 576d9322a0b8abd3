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


// Package hukumpedia answers questions about Indonesian legal documents by
// retrieving the most relevant articles ("pasal") chapter by chapter and
// composing an answer from them.
package hukumpedia

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/hukumpedia/ai"
	"github.com/poiesic/hukumpedia/ai/cached"
	"github.com/poiesic/hukumpedia/ai/openai"
	"github.com/poiesic/hukumpedia/answer"
	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/search"
	"github.com/poiesic/hukumpedia/storage"
	"github.com/poiesic/hukumpedia/storage/badger"
	"github.com/poiesic/hukumpedia/structure"
)

var (
	// ErrEmptyCorpus is returned when a session is created without chapters.
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrEmbeddingModelRequired is returned when an embedding cache is
	// configured for an embedder whose model cannot be determined.
	ErrEmbeddingModelRequired = errors.New("embedding model name required to cache embeddings")
)

// Session holds a loaded corpus, its chapter index and the AI collaborators
// used to answer questions. A Session is safe for concurrent use.
type Session struct {
	chapters  []*core.Chapter
	provider  ai.AIProvider
	cache     storage.EmbeddingCache
	embedder  ai.Embedder
	retriever *search.Retriever
	answers   *answer.Service
	logger    *slog.Logger
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	aiConfig   *ai.Config
	embedder   ai.Embedder
	model      string
	composer   ai.AnswerComposer
	noComposer bool
	cacheDir   string
	cache      storage.EmbeddingCache
	searchOpts []search.Option
	logger     *slog.Logger
}

// WithAIConfig sets the configuration for the OpenAI-compatible services.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) Option {
	return func(o *sessionOptions) {
		o.aiConfig = config
	}
}

// WithEmbedder replaces the configured embedding service.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(o *sessionOptions) {
		o.embedder = embedder
	}
}

// WithEmbeddingModel names the model behind the embedder. Cached vectors are
// keyed by this name. It is required with WithCache or WithCacheDir when the
// embedder given to WithEmbedder does not implement ai.ModelNamer, and takes
// precedence over the embedder's own name.
func WithEmbeddingModel(name string) Option {
	return func(o *sessionOptions) {
		o.model = name
	}
}

// WithComposer replaces the configured answer composer.
func WithComposer(composer ai.AnswerComposer) Option {
	return func(o *sessionOptions) {
		o.composer = composer
	}
}

// WithoutComposer disables answer composition. Ask then always returns raw results.
func WithoutComposer() Option {
	return func(o *sessionOptions) {
		o.noComposer = true
	}
}

// WithCacheDir persists embeddings in a badger database under dir.
func WithCacheDir(dir string) Option {
	return func(o *sessionOptions) {
		o.cacheDir = dir
	}
}

// WithCache uses an already opened embedding cache. The session takes
// ownership and closes it.
func WithCache(cache storage.EmbeddingCache) Option {
	return func(o *sessionOptions) {
		o.cache = cache
	}
}

// WithSearchOptions passes options through to the retriever.
func WithSearchOptions(opts ...search.Option) Option {
	return func(o *sessionOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// OpenSession loads a corpus exported by structure.SaveFile and creates a session over it.
func OpenSession(ctx context.Context, corpusPath string, opts ...Option) (*Session, error) {
	chapters, err := structure.LoadFile(corpusPath)
	if err != nil {
		return nil, err
	}
	return NewSession(ctx, chapters, opts...)
}

// NewSession validates chapters, wires the AI collaborators and builds the
// chapter index. The chapters must not be modified afterwards.
func NewSession(ctx context.Context, chapters []*core.Chapter, opts ...Option) (*Session, error) {
	options := &sessionOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.aiConfig == nil {
		options.aiConfig = ai.DefaultConfig()
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	logger := options.logger.With("component", "session")

	s := &Session{
		chapters: chapters,
		cache:    options.cache,
		logger:   logger,
	}

	if len(chapters) == 0 {
		s.Close()
		return nil, ErrEmptyCorpus
	}
	for _, c := range chapters {
		if err := core.ValidateChapter(c); err != nil {
			s.Close()
			return nil, err
		}
	}

	embedder := options.embedder
	composer := options.composer
	needProvider := embedder == nil || (composer == nil && !options.noComposer)
	if needProvider {
		provider, err := openai.NewProvider(options.aiConfig)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.provider = provider
		if embedder == nil {
			embedder = provider.Embedder()
		}
		if composer == nil && !options.noComposer {
			composer = provider.AnswerComposer()
		}
	}
	if options.noComposer {
		composer = nil
	}

	if s.cache == nil && options.cacheDir != "" {
		cache, err := badger.NewCache(options.cacheDir)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.cache = cache
	}
	if s.cache != nil {
		model := embeddingModel(embedder, options.model)
		if model == "" {
			s.Close()
			return nil, ErrEmbeddingModelRequired
		}
		embedder = cached.NewEmbedder(embedder, s.cache, model)
	}
	s.embedder = embedder

	searchOpts := append([]search.Option{search.WithLogger(options.logger.With("component", "retriever"))}, options.searchOpts...)
	retriever, err := search.NewRetriever(ctx, chapters, embedder, searchOpts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.retriever = retriever

	answers, err := answer.NewService(retriever, composer, answer.WithLogger(options.logger.With("component", "answer")))
	if err != nil {
		s.Close()
		return nil, err
	}
	s.answers = answers

	logger.Info("session ready", "chapters", len(chapters), "cached", s.cache != nil, "composer", composer != nil)
	return s, nil
}

// embeddingModel returns the explicit model name, or the one the embedder
// reports. Empty means unknown.
func embeddingModel(embedder ai.Embedder, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if namer, ok := embedder.(ai.ModelNamer); ok {
		return namer.Model()
	}
	return ""
}

// Chapters returns the corpus in document order.
func (s *Session) Chapters() []*core.Chapter {
	return s.chapters
}

// Embedder returns the embedder used by the session, including its cache layer.
func (s *Session) Embedder() ai.Embedder {
	return s.embedder
}

// Cache returns the embedding cache, or nil when none is configured.
func (s *Session) Cache() storage.EmbeddingCache {
	return s.cache
}

// Retrieve returns up to topK articles for query. See search.Retriever.
func (s *Session) Retrieve(ctx context.Context, query string, topK int) (*search.Retrieval, error) {
	return s.retriever.Retrieve(ctx, query, topK)
}

// Ask answers question from the topK most relevant articles. See answer.Service.
func (s *Session) Ask(ctx context.Context, question string, topK int) (*answer.Response, error) {
	return s.answers.Ask(ctx, question, topK)
}

// Close releases the AI provider and the embedding cache.
func (s *Session) Close() error {
	var errs []error
	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			s.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("error closing embedding cache", "err", err)
			errs = append(errs, fmt.Errorf("closing embedding cache: %w", err))
		}
	}
	return errors.Join(errs...)
}
