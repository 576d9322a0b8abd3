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


package warmup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/hukumpedia/ai"
	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/normalize"
)

// Config holds the warm-up settings.
type Config struct {
	// BatchSize is the number of texts sent in one embedding request.
	BatchSize int
	// Workers is the number of batches embedded concurrently.
	Workers int
	// ReportEvery is how often, in texts, progress is printed.
	ReportEvery int
	// Retry controls retries of a failed batch.
	Retry RetryPolicy
}

// DefaultConfig returns the default warm-up settings.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:   64,
		Workers:     4,
		ReportEvery: 64,
		Retry: RetryPolicy{
			Attempts:  3,
			BaseDelay: time.Second,
			MaxDelay:  30 * time.Second,
		},
	}
}

func (c *Config) validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("%w: batch size %d", ErrInvalidConfig, c.BatchSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %d workers", ErrInvalidConfig, c.Workers)
	}
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidAttempts)
	}
	return nil
}

// Report summarises a warm-up run.
type Report struct {
	Texts   int
	Batches int
	Elapsed time.Duration
}

// Warmer embeds every chapter label and article text of a corpus.
// Pair it with a caching embedder to persist the vectors.
type Warmer struct {
	embedder ai.Embedder
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewWarmer creates a Warmer. A nil config uses DefaultConfig and a nil
// progress writer discards progress output.
func NewWarmer(embedder ai.Embedder, config *Config, progress io.Writer) (*Warmer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Warmer{
		embedder: embedder,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "warmup"),
	}, nil
}

// Texts returns the distinct texts the retriever embeds for chapters: the
// normalized chapter labels followed by the normalized article texts.
func Texts(chapters []*core.Chapter) []string {
	seen := make(map[string]struct{})
	var texts []string
	add := func(s string) {
		s = normalize.Text(s)
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		texts = append(texts, s)
	}
	for _, c := range chapters {
		add(c.Label())
	}
	for _, a := range core.Flatten(chapters) {
		add(a.Text)
	}
	return texts
}

// Run embeds the corpus. It stops at the first batch that still fails after
// its retries and returns that error.
func (w *Warmer) Run(ctx context.Context, chapters []*core.Chapter) (*Report, error) {
	texts := Texts(chapters)
	if len(texts) == 0 {
		fmt.Fprintln(w.progress, "Nothing to embed (0 texts)")
		return &Report{}, nil
	}

	batches := split(texts, w.config.BatchSize)
	fmt.Fprintf(w.progress, "Embedding %d texts in %d batches (%d workers)\n",
		len(texts), len(batches), w.config.Workers)

	pool, err := ants.NewPool(w.config.Workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progress := NewProgress(w.progress, len(texts), w.config.ReportEvery)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i, batch := range batches {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := w.embedBatch(ctx, batch); err != nil {
				fail(fmt.Errorf("batch %d: %w", i, err))
				return
			}
			progress.Add(len(batch))
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}
	wg.Wait()

	if firstErr == nil {
		if err := ctx.Err(); err != nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		fmt.Fprintln(w.progress)
		w.logger.Error("warm-up failed", "embedded", progress.Count(), "total", len(texts), "err", firstErr)
		return nil, firstErr
	}

	progress.Done()
	report := &Report{Texts: len(texts), Batches: len(batches), Elapsed: progress.Elapsed()}
	fmt.Fprintf(w.progress, "Warm-up complete. Embedded %d texts in %v\n", report.Texts, report.Elapsed.Round(time.Millisecond))
	return report, nil
}

func (w *Warmer) embedBatch(ctx context.Context, batch []string) error {
	return Retry(ctx, w.config.Retry, w.logger, func(ctx context.Context) error {
		vectors, err := w.embedder.EmbedTexts(ctx, batch)
		if err != nil {
			return err
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(vectors))
		}
		return nil
	})
}

func split(texts []string, size int) [][]string {
	batches := make([][]string, 0, (len(texts)+size-1)/size)
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))
		batches = append(batches, texts[start:end])
	}
	return batches
}
