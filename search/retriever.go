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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/poiesic/hukumpedia/ai"
	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/index"
	"github.com/poiesic/hukumpedia/normalize"
)

const (
	// DefaultThreshold is the chapter confidence threshold on squared
	// Euclidean distance. It was tuned for one embedding model.
	DefaultThreshold float32 = 1.0

	// DefaultTopK is the number of articles returned when none is requested.
	DefaultTopK = 3

	// allScope is the memo key of the unscoped article index.
	allScope = "\x00all"
)

// Decision describes the outcome of the chapter stage.
type Decision struct {
	// Chapter is the chapter nearest to the query.
	Chapter *core.Chapter
	// Distance is the squared Euclidean distance from the query to Chapter.
	Distance float32
	// Scoped is true when the article search was limited to Chapter.
	Scoped bool
	// Widened is true when the chapter scope was empty and the search fell
	// back to every article.
	Widened bool
	// ScopeSize is the number of articles searched.
	ScopeSize int
}

// Retrieval is the result of a query.
type Retrieval struct {
	Results  []*core.SearchResult
	Decision Decision
}

// Retriever performs two-stage chapter then article retrieval over a fixed corpus.
// The chapter index is built once; article indices are built per scope and
// memoized. A Retriever is safe for concurrent use.
type Retriever struct {
	chapters     []*core.Chapter
	articles     []*core.Article
	titles       map[string]string
	chapterIndex *index.Index[*core.Chapter]
	embedder     ai.Embedder
	threshold    float32
	defaultTopK  int
	cacheScopes  bool
	logger       *slog.Logger

	mu     sync.Mutex
	scopes map[string]*index.Index[*core.Article]
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithThreshold sets the chapter confidence threshold. A query whose nearest
// chapter is closer than threshold is scoped to that chapter.
func WithThreshold(threshold float32) Option {
	return func(r *Retriever) error {
		if threshold < 0 || math.IsNaN(float64(threshold)) {
			return fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
		}
		r.threshold = threshold
		return nil
	}
}

// WithDefaultTopK sets the result count used when Retrieve is called with topK <= 0.
func WithDefaultTopK(k int) Option {
	return func(r *Retriever) error {
		if k <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidTopK, k)
		}
		r.defaultTopK = k
		return nil
	}
}

// WithScopeCache enables or disables memoization of per-scope article indices.
// Enabled by default.
func WithScopeCache(enabled bool) Option {
	return func(r *Retriever) error {
		r.cacheScopes = enabled
		return nil
	}
}

// NewRetriever embeds every chapter label and builds the chapter index.
func NewRetriever(ctx context.Context, chapters []*core.Chapter, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if len(chapters) == 0 {
		return nil, ErrNoChapters
	}

	r := &Retriever{
		chapters:    chapters,
		articles:    core.Flatten(chapters),
		titles:      make(map[string]string, len(chapters)),
		embedder:    embedder,
		threshold:   DefaultThreshold,
		defaultTopK: DefaultTopK,
		cacheScopes: true,
		logger:      slog.Default().With("component", "retriever"),
		scopes:      make(map[string]*index.Index[*core.Article]),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	for _, c := range chapters {
		key := strings.ToUpper(c.ID)
		if _, ok := r.titles[key]; ok {
			r.logger.Warn("duplicate chapter identifier", "chapter", c.ID)
			continue
		}
		r.titles[key] = c.Title
	}

	chapterIndex, err := index.Build(ctx, chapters, chapterText, embedder)
	if err != nil {
		return nil, fmt.Errorf("building chapter index: %w", err)
	}
	r.chapterIndex = chapterIndex

	r.logger.Debug("retriever ready",
		"chapters", len(chapters),
		"articles", len(r.articles),
		"threshold", r.threshold)
	return r, nil
}

// chapterText is the text embedded for a chapter: its identifier and title.
func chapterText(c *core.Chapter) string {
	return c.Label()
}

func articleText(a *core.Article) string {
	return a.Text
}

// Threshold returns the chapter confidence threshold in use.
func (r *Retriever) Threshold() float32 {
	return r.threshold
}

// Chapters returns the corpus chapters in document order.
func (r *Retriever) Chapters() []*core.Chapter {
	return r.chapters
}

// Retrieve returns up to topK articles most similar to query, nearest first.
// topK <= 0 uses the default. Fewer results are returned when the searched
// scope holds fewer articles.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) (*Retrieval, error) {
	return r.RetrieveWithMonitor(ctx, query, topK, nil)
}

// RetrieveWithMonitor is Retrieve with callbacks at each stage.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, query string, topK int, monitor SearchMonitor) (*Retrieval, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if topK <= 0 {
		topK = r.defaultTopK
	}

	monitor.Start(query, topK)

	// 1. Chapter stage
	vector, err := r.embedder.EmbedText(ctx, normalize.Text(query))
	if err != nil {
		r.logger.Error("error generating embedding for query", "err", err)
		return nil, fmt.Errorf("%w: %w", index.ErrCollaboratorUnavailable, err)
	}

	hits, err := r.chapterIndex.Search(vector, 1)
	if err != nil {
		return nil, err
	}
	nearest := hits[0]
	monitor.AfterChapterSearch(nearest.Record, nearest.Distance)

	decision := Decision{
		Chapter:  nearest.Record,
		Distance: nearest.Distance,
	}

	// 2. Threshold decision
	scopeKey := allScope
	scope := r.articles
	if nearest.Distance < r.threshold {
		chapterID := nearest.Record.ID
		filtered := r.filterByChapter(chapterID)
		if len(filtered) > 0 {
			decision.Scoped = true
			scopeKey = strings.ToLower(chapterID)
			scope = filtered
		} else {
			decision.Widened = true
			monitor.ScopeWidened(chapterID)
			r.logger.Debug("chapter has no articles, searching all", "chapter", chapterID)
		}
	}
	decision.ScopeSize = len(scope)
	if decision.Scoped {
		monitor.ScopeSelected(nearest.Record.ID, len(scope))
	} else {
		monitor.ScopeSelected("", len(scope))
	}

	r.logger.Debug("chapter stage",
		"chapter", nearest.Record.ID,
		"distance", nearest.Distance,
		"scoped", decision.Scoped,
		"scope_size", len(scope))

	if len(scope) == 0 {
		results := []*core.SearchResult{}
		monitor.Finish(results)
		return &Retrieval{Results: results, Decision: decision}, nil
	}

	// 3. Article stage
	articleIndex, err := r.scopeIndex(ctx, scopeKey, scope)
	if err != nil {
		return nil, err
	}

	articleHits, err := articleIndex.Search(vector, topK)
	if err != nil {
		return nil, err
	}

	results := make([]*core.SearchResult, 0, len(articleHits))
	for _, hit := range articleHits {
		results = append(results, &core.SearchResult{
			ArticleID:    hit.Record.ID,
			ChapterID:    hit.Record.ChapterID,
			Text:         hit.Record.Text,
			ChapterTitle: r.titles[strings.ToUpper(hit.Record.ChapterID)],
			Distance:     hit.Distance,
		})
	}

	monitor.Finish(results)
	return &Retrieval{Results: results, Decision: decision}, nil
}

// filterByChapter returns the articles of every chapter whose identifier
// matches chapterID case-insensitively. Duplicate chapters all contribute.
func (r *Retriever) filterByChapter(chapterID string) []*core.Article {
	var filtered []*core.Article
	for _, a := range r.articles {
		if a.InChapter(chapterID) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// scopeIndex returns the article index for a scope, building it on a memo miss.
func (r *Retriever) scopeIndex(ctx context.Context, key string, scope []*core.Article) (*index.Index[*core.Article], error) {
	if r.cacheScopes {
		r.mu.Lock()
		idx, ok := r.scopes[key]
		r.mu.Unlock()
		if ok {
			return idx, nil
		}
	}

	idx, err := index.Build(ctx, scope, articleText, r.embedder)
	if err != nil {
		return nil, fmt.Errorf("building article index: %w", err)
	}

	if r.cacheScopes {
		r.mu.Lock()
		if existing, ok := r.scopes[key]; ok {
			idx = existing
		} else {
			r.scopes[key] = idx
		}
		r.mu.Unlock()
	}
	return idx, nil
}
