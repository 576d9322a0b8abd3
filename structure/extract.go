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


package structure

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/poiesic/hukumpedia/core"
)

var (
	// ChapterPattern matches a chapter marker such as "BAB XIV" or "bab iv".
	ChapterPattern = regexp.MustCompile(`(?i)\bBAB\s+[IVXLCDM]+\b`)

	// ArticlePattern matches an article marker such as "Pasal 12" or "Pasal 28A".
	ArticlePattern = regexp.MustCompile(`(?i)\bPasal\s+\d+[A-Z]*\b`)

	whitespace = regexp.MustCompile(`\s+`)
)

// Extractor parses raw document text into chapters and articles.
type Extractor struct {
	chapters *Segmenter
	articles *Segmenter
	article  *regexp.Regexp
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for extraction diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// WithChapterPattern replaces the chapter marker pattern.
func WithChapterPattern(pattern *regexp.Regexp) Option {
	return func(e *Extractor) {
		e.chapters = NewSegmenter(pattern)
	}
}

// WithArticlePattern replaces the article marker pattern.
func WithArticlePattern(pattern *regexp.Regexp) Option {
	return func(e *Extractor) {
		e.article = pattern
		e.articles = NewSegmenter(pattern)
	}
}

// NewExtractor creates an extractor for "BAB"/"Pasal" structured documents.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		chapters: NewSegmenter(ChapterPattern),
		articles: NewSegmenter(ArticlePattern),
		article:  ArticlePattern,
		logger:   slog.Default().With("component", "extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses raw text with the default extractor.
func Extract(raw string) []*core.Chapter {
	return NewExtractor().Extract(raw)
}

// Extract returns the chapters of raw in document order, each with its
// articles in document order. It never fails: text without chapter markers
// yields an empty slice and chapters without article markers have no articles.
//
// The title is the first non-blank line after the chapter marker, but an
// article marker on that line is never swallowed into it. "BAB I Umum Pasal 1
// Isi" gives the title "Umum" and article "Pasal 1", and "BAB I\nPasal 1 Isi"
// gives an empty title. Exports made by taking the whole first line as the
// title differ from this output on such lines only; chapter and article
// counts are the same.
func (e *Extractor) Extract(raw string) []*core.Chapter {
	chapters := make([]*core.Chapter, 0)

	_, segments := e.chapters.Segment(raw)
	if len(segments) == 0 {
		e.logger.Warn("malformed input: no chapter markers found", "length", len(raw))
		return chapters
	}

	articleCount := 0
	for _, seg := range segments {
		id := strings.ToUpper(collapse(seg.Marker))
		title, region := e.splitTitle(strings.TrimSpace(seg.Body), id)

		chapter := &core.Chapter{
			ID:       id,
			Title:    title,
			Articles: []*core.Article{},
		}

		_, parts := e.articles.Segment(region)
		for _, part := range parts {
			chapter.Articles = append(chapter.Articles, &core.Article{
				ID:        collapse(part.Marker),
				Text:      collapse(part.Body),
				ChapterID: id,
			})
		}
		if len(chapter.Articles) == 0 {
			e.logger.Debug("chapter has no article markers", "chapter", id)
		}

		articleCount += len(chapter.Articles)
		chapters = append(chapters, chapter)
	}

	if articleCount == 0 {
		e.logger.Warn("malformed input: no article markers found", "chapters", len(chapters))
	}
	e.logger.Debug("extracted structure", "chapters", len(chapters), "articles", articleCount)

	return chapters
}

// splitTitle picks the chapter title from the first non-blank line of body
// and returns it together with the text left for article segmentation.
// A title equal to the chapter identifier is discarded. An article marker on
// the title line ends the title; when the line starts with one there is no title.
func (e *Extractor) splitTitle(body, id string) (string, string) {
	lines := strings.Split(body, "\n")
	for idx, line := range lines {
		candidate := strings.TrimSpace(line)
		if candidate == "" {
			continue
		}

		rest := strings.Join(lines[idx+1:], "\n")
		if loc := e.article.FindStringIndex(candidate); loc != nil {
			if loc[0] == 0 {
				return "", body
			}
			rest = candidate[loc[0]:] + "\n" + rest
			candidate = strings.TrimSpace(candidate[:loc[0]])
		}

		if strings.ToUpper(collapse(candidate)) == id {
			candidate = ""
		}
		return candidate, rest
	}
	return "", body
}

// collapse replaces whitespace runs with a single space and trims the ends.
func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// Stats summarises an extracted structure.
type Stats struct {
	Chapters         int
	Articles         int
	EmptyChapters    int
	UntitledChapters int
}

// Summarize counts chapters and articles.
func Summarize(chapters []*core.Chapter) Stats {
	var s Stats
	s.Chapters = len(chapters)
	for _, c := range chapters {
		s.Articles += len(c.Articles)
		if len(c.Articles) == 0 {
			s.EmptyChapters++
		}
		if c.Title == "" {
			s.UntitledChapters++
		}
	}
	return s
}
