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
	"fmt"
	"strings"
)

// ValidateChapter checks a chapter and every article it owns.
// Articles must carry the chapter's identifier as their ChapterID.
// A chapter without articles is valid.
func ValidateChapter(chapter *Chapter) error {
	if chapter == nil {
		return fmt.Errorf("%w: chapter is nil", ErrInvalidChapter)
	}

	if strings.TrimSpace(chapter.ID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChapter, ErrEmptyIdentifier)
	}

	for i, article := range chapter.Articles {
		if err := ValidateArticle(article); err != nil {
			return fmt.Errorf("%w: article %d of %s: %w", ErrInvalidChapter, i, chapter.ID, err)
		}
		if article.ChapterID != chapter.ID {
			return fmt.Errorf("%w: %s in %s: %w", ErrInvalidArticle, article.ID, chapter.ID, ErrChapterMismatch)
		}
	}

	return nil
}

// ValidateArticle checks that an article has an identifier.
// Empty text is allowed; a marker followed directly by another marker yields one.
func ValidateArticle(article *Article) error {
	if article == nil {
		return fmt.Errorf("%w: article is nil", ErrInvalidArticle)
	}

	if strings.TrimSpace(article.ID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyIdentifier)
	}

	return nil
}

func ValidateCachedEmbedding(embedding *CachedEmbedding) error {
	if embedding == nil {
		return fmt.Errorf("%w: embedding is nil", ErrInvalidEmbedding)
	}
	if embedding.Model == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEmbedding, ErrEmptyModel)
	}
	if len(embedding.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEmbedding, ErrEmptyVector)
	}
	return nil
}
