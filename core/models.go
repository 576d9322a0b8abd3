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


package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for cached entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chapter is a top-level structural unit of a legal document ("BAB").
// Chapters are created once per extraction run and treated as read-only afterwards.
type Chapter struct {
	ID       string     `json:"bab"`
	Title    string     `json:"judul"`
	Articles []*Article `json:"pasal_list"`
}

// Article is a numbered provision ("Pasal") inside a chapter.
type Article struct {
	ID   string `json:"pasal"`
	Text string `json:"teks"`

	// ChapterID is the owning chapter's identifier, copied at creation for
	// filtering. It is not part of the export format.
	ChapterID string `json:"-"`
}

// Label renders the chapter identifier together with its title when it has one.
func (c *Chapter) Label() string {
	if c.Title == "" {
		return c.ID
	}
	return c.ID + " " + c.Title
}

// InChapter reports whether the article belongs to the chapter with the given
// identifier. Matching is case-insensitive.
func (a *Article) InChapter(chapterID string) bool {
	return strings.EqualFold(a.ChapterID, chapterID)
}

// Flatten returns every article of every chapter in document order.
func Flatten(chapters []*Chapter) []*Article {
	total := 0
	for _, c := range chapters {
		total += len(c.Articles)
	}
	articles := make([]*Article, 0, total)
	for _, c := range chapters {
		articles = append(articles, c.Articles...)
	}
	return articles
}

// SearchResult is a single ranked article returned by retrieval.
type SearchResult struct {
	ArticleID    string  `json:"pasal"`
	ChapterID    string  `json:"bab"`
	Text         string  `json:"teks"`
	ChapterTitle string  `json:"judul,omitempty"`
	Distance     float32 `json:"distance"` // squared Euclidean, lower is more similar
}

// CachedEmbedding is an embedding vector persisted in the embedding cache.
type CachedEmbedding struct {
	Id         ID
	Model      string
	Vector     []float32
	InsertedAt time.Time
}

// EmbeddingID computes the cache key for a text embedded with a given model.
func EmbeddingID(model, text string) ID {
	return IDFromContent(model + "\x00" + text)
}
