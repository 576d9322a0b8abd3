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
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/hukumpedia/core"
)

// WriteJSON writes chapters in the corpus export format, indented with four
// spaces. Non-ASCII text is written as UTF-8 and HTML characters are not escaped.
func WriteJSON(w io.Writer, chapters []*core.Chapter) error {
	out := make([]*core.Chapter, len(chapters))
	for i, c := range chapters {
		if c.Articles == nil {
			// pasal_list is always an array, never null
			copied := *c
			copied.Articles = []*core.Article{}
			c = &copied
		}
		out[i] = c
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(out)
}

// ReadJSON decodes a corpus export. The chapter back-reference of every
// article is restored from its owning chapter.
func ReadJSON(r io.Reader) ([]*core.Chapter, error) {
	var chapters []*core.Chapter
	if err := json.NewDecoder(r).Decode(&chapters); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCorpus, err)
	}
	if chapters == nil {
		chapters = []*core.Chapter{}
	}

	for i, chapter := range chapters {
		if chapter == nil {
			return nil, fmt.Errorf("%w: chapter %d is null", ErrInvalidCorpus, i)
		}
		if chapter.Articles == nil {
			chapter.Articles = []*core.Article{}
		}
		for _, article := range chapter.Articles {
			if article != nil {
				article.ChapterID = chapter.ID
			}
		}
		if err := core.ValidateChapter(chapter); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCorpus, err)
		}
	}

	return chapters, nil
}

// SaveFile writes chapters to path in the corpus export format.
func SaveFile(path string, chapters []*core.Chapter) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := WriteJSON(w, chapters); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a corpus export from path.
func LoadFile(path string) ([]*core.Chapter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadJSON(bufio.NewReader(f))
}
