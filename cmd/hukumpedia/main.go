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


package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/hukumpedia"
	"github.com/poiesic/hukumpedia/ai"
	"github.com/poiesic/hukumpedia/answer"
	"github.com/poiesic/hukumpedia/api"
	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/document"
	"github.com/poiesic/hukumpedia/search"
	"github.com/poiesic/hukumpedia/structure"
	"github.com/poiesic/hukumpedia/warmup"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command line application. Session options given here are
// applied after those derived from flags.
func newApp(overrides ...hukumpedia.Option) *cli.App {
	return &cli.App{
		Name:  "hukumpedia",
		Usage: "Question answering over Indonesian legal documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"HUKUMPEDIA_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file if it exists",
				Value: ".env",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "extract",
				Usage:  "Extract chapters and articles from a document into a corpus file",
				Action: extractCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Source document (.txt, .md, .html, .pdf, .docx)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Corpus JSON file to write",
						Value:   "corpus.json",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Print the articles most similar to a query",
				ArgsUsage: "QUERY",
				Action: func(c *cli.Context) error {
					return searchCommand(c, overrides)
				},
				Flags: append(sessionFlags(), &cli.IntFlag{
					Name:    "top-k",
					Aliases: []string{"k"},
					Usage:   "Number of articles to return",
					Value:   search.DefaultTopK,
				}),
			},
			{
				Name:  "chat",
				Usage: "Interactive question answering",
				Action: func(c *cli.Context) error {
					return chatCommand(c, overrides)
				},
				Flags: append(append(sessionFlags(), composerFlags()...),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of articles used per answer",
						Value:   search.DefaultTopK,
					},
					&cli.BoolFlag{
						Name:  "no-llm",
						Usage: "Show search results only, without composing answers",
					},
				),
			},
			{
				Name:  "warm",
				Usage: "Embed the whole corpus into the embedding cache",
				Action: func(c *cli.Context) error {
					return warmCommand(c, overrides)
				},
				Flags: append(sessionFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of texts per embedding request",
						Value: 64,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent embedding requests",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per batch",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:  "serve",
				Usage: "Serve the HTTP API",
				Action: func(c *cli.Context) error {
					return serveCommand(c, overrides)
				},
				Flags: append(append(sessionFlags(), composerFlags()...),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"HUKUMPEDIA_ADDR"},
					},
					&cli.StringSliceFlag{
						Name:  "allowed-origin",
						Usage: "CORS origin allowed to call the API (repeatable)",
					},
				),
			},
		},
	}
}

// sessionFlags are shared by every command that loads a corpus.
func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "corpus",
			Aliases:  []string{"c"},
			Usage:    "Corpus JSON file produced by extract",
			Required: true,
			EnvVars:  []string{"HUKUMPEDIA_CORPUS"},
		},
		&cli.StringFlag{
			Name:    "cache-dir",
			Usage:   "Directory of the embedding cache (disabled when empty)",
			EnvVars: []string{"HUKUMPEDIA_CACHE_DIR"},
		},
		&cli.Float64Flag{
			Name:  "threshold",
			Usage: "Chapter confidence threshold on squared Euclidean distance",
			Value: float64(search.DefaultThreshold),
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"HUKUMPEDIA_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "mxbai-embed-large",
			EnvVars: []string{"HUKUMPEDIA_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "api-token",
			Usage:   "API token for the AI services",
			EnvVars: []string{"HUKUMPEDIA_API_TOKEN", "OPENAI_API_KEY"},
		},
	}
}

func composerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "composer-host",
			Usage:   "Answer composition service host URL (defaults to embedding-host)",
			EnvVars: []string{"HUKUMPEDIA_COMPOSER_HOST"},
		},
		&cli.StringFlag{
			Name:    "composer-model",
			Usage:   "Answer composition model name",
			Value:   "deepseek-r1",
			EnvVars: []string{"HUKUMPEDIA_COMPOSER_MODEL"},
		},
		&cli.Float64Flag{
			Name:  "temperature",
			Usage: "Sampling temperature for answer composition",
			Value: 0,
		},
	}
}

// aiConfig builds the AI configuration from flags. Composer flags are only
// defined on some commands; absent ones keep their defaults.
func aiConfig(c *cli.Context) (*ai.Config, error) {
	composerHost := c.String("composer-host")
	if composerHost == "" {
		composerHost = c.String("embedding-host")
	}

	opts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithComposerHost(composerHost),
		ai.WithToken(c.String("api-token")),
	}
	if model := c.String("composer-model"); model != "" {
		opts = append(opts, ai.WithComposerModel(model))
	}
	if c.IsSet("temperature") {
		opts = append(opts, ai.WithTemperature(c.Float64("temperature")))
	}

	cfg := ai.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return cfg, nil
}

func openSession(c *cli.Context, overrides []hukumpedia.Option, extra ...hukumpedia.Option) (*hukumpedia.Session, error) {
	cfg, err := aiConfig(c)
	if err != nil {
		return nil, err
	}

	opts := []hukumpedia.Option{
		hukumpedia.WithAIConfig(cfg),
		hukumpedia.WithSearchOptions(search.WithThreshold(float32(c.Float64("threshold")))),
	}
	if dir := c.String("cache-dir"); dir != "" {
		opts = append(opts,
			hukumpedia.WithCacheDir(dir),
			hukumpedia.WithEmbeddingModel(c.String("embedding-model")))
	}
	opts = append(opts, extra...)
	opts = append(opts, overrides...)

	session, err := hukumpedia.OpenSession(c.Context, c.String("corpus"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return session, nil
}

func extractCommand(c *cli.Context) error {
	input := c.String("input")
	text, err := document.LoadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	chapters := structure.Extract(text)
	if len(chapters) == 0 {
		return fmt.Errorf("no chapters found in %s", input)
	}

	output := c.String("output")
	if err := structure.SaveFile(output, chapters); err != nil {
		return fmt.Errorf("failed to write corpus: %w", err)
	}

	stats := structure.Summarize(chapters)
	fmt.Fprintf(c.App.ErrWriter, "Extracted %d chapters and %d articles from %s into %s\n",
		stats.Chapters, stats.Articles, input, output)
	if stats.EmptyChapters > 0 {
		fmt.Fprintf(c.App.ErrWriter, "%d chapters have no articles\n", stats.EmptyChapters)
	}
	return nil
}

func searchCommand(c *cli.Context, overrides []hukumpedia.Option) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return errors.New("a query is required")
	}

	session, err := openSession(c, overrides, hukumpedia.WithoutComposer())
	if err != nil {
		return err
	}
	defer session.Close()

	retrieval, err := session.Retrieve(c.Context, query, c.Int("top-k"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printResults(c, retrieval.Decision, retrieval.Results)
	return nil
}

func chatCommand(c *cli.Context, overrides []hukumpedia.Option) error {
	noLLM := c.Bool("no-llm")

	var extra []hukumpedia.Option
	if noLLM {
		extra = append(extra, hukumpedia.WithoutComposer())
	}
	session, err := openSession(c, overrides, extra...)
	if err != nil {
		return err
	}
	defer session.Close()

	out := c.App.Writer
	topK := c.Int("top-k")
	fmt.Fprintf(out, "Legal assistant ready (%d chapters). Type 'exit' or 'q' to quit.\n", len(session.Chapters()))

	scanner := bufio.NewScanner(c.App.Reader)
	for {
		fmt.Fprint(out, "\nQuestion: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if isQuit(question) {
			break
		}

		if noLLM {
			retrieval, err := session.Retrieve(c.Context, question, topK)
			if err != nil {
				fmt.Fprintf(c.App.ErrWriter, "search failed: %v\n", err)
				continue
			}
			printResults(c, retrieval.Decision, retrieval.Results)
			continue
		}

		resp, err := session.Ask(c.Context, question, topK)
		if err != nil {
			fmt.Fprintf(c.App.ErrWriter, "search failed: %v\n", err)
			continue
		}
		if resp.Fallback {
			fmt.Fprintf(out, "\nAnswer unavailable (%v), showing search results instead.\n", resp.ComposeErr)
			printResults(c, resp.Decision, resp.Results)
			continue
		}
		if notice := answer.FormatDecision(resp.Decision); notice != "" {
			fmt.Fprintf(out, "\n%s\n", notice)
		}
		fmt.Fprintf(out, "\nAnswer:\n%s\n", resp.Answer)
	}
	return scanner.Err()
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "q", "quit":
		return true
	}
	return false
}

func printResults(c *cli.Context, decision search.Decision, results []*core.SearchResult) {
	out := c.App.Writer
	if notice := answer.FormatDecision(decision); notice != "" {
		fmt.Fprintf(out, "\n%s\n", notice)
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "\nNo articles found.")
		return
	}
	fmt.Fprintf(out, "\nSearch results:\n%s", answer.FormatResults(results))
}

func warmCommand(c *cli.Context, overrides []hukumpedia.Option) error {
	if c.String("cache-dir") == "" {
		return errors.New("cache-dir is required for warm")
	}

	session, err := openSession(c, overrides, hukumpedia.WithoutComposer())
	if err != nil {
		return err
	}
	defer session.Close()

	cfg := warmup.DefaultConfig()
	cfg.BatchSize = c.Int("batch-size")
	cfg.Workers = c.Int("workers")
	cfg.ReportEvery = cfg.BatchSize
	cfg.Retry.Attempts = c.Int("max-retries")
	cfg.Retry.BaseDelay = c.Duration("retry-delay")

	warmer, err := warmup.NewWarmer(session.Embedder(), cfg, c.App.ErrWriter)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.ErrWriter, "Corpus: %s\n", c.String("corpus"))
	fmt.Fprintf(c.App.ErrWriter, "Cache: %s\n", c.String("cache-dir"))
	fmt.Fprintf(c.App.ErrWriter, "Embedding model: %s\n", c.String("embedding-model"))

	if _, err := warmer.Run(c.Context, session.Chapters()); err != nil {
		return fmt.Errorf("warm-up failed: %w", err)
	}
	return nil
}

func serveCommand(c *cli.Context, overrides []hukumpedia.Option) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := openSession(c, overrides)
	if err != nil {
		return err
	}
	defer session.Close()

	var opts []api.Option
	if origins := c.StringSlice("allowed-origin"); len(origins) > 0 {
		opts = append(opts, api.WithAllowedOrigins(origins...))
	}

	httpServer := &http.Server{
		Addr:         c.String("addr"),
		Handler:      api.NewServer(session, opts...),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error shutting down server", "err", err)
		}
	}()

	slog.Info("starting hukumpedia", "addr", httpServer.Addr, "chapters", len(session.Chapters()))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// setup loads the env file and configures the default logger.
func setup(c *cli.Context) error {
	if path := c.String("env-file"); path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
