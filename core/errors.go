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

import "errors"

var (
	// ErrInvalidChapter indicates a Chapter failed validation.
	ErrInvalidChapter = errors.New("invalid chapter")

	// ErrInvalidArticle indicates an Article failed validation.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrEmptyIdentifier indicates a chapter or article identifier is empty.
	ErrEmptyIdentifier = errors.New("identifier cannot be empty")

	// ErrChapterMismatch indicates an article's chapter reference does not match its owner.
	ErrChapterMismatch = errors.New("article chapter reference does not match owning chapter")

	// ErrInvalidEmbedding indicates a cached embedding failed validation.
	ErrInvalidEmbedding = errors.New("invalid cached embedding")

	// ErrEmptyVector indicates an embedding vector has no dimensions.
	ErrEmptyVector = errors.New("vector cannot be empty")

	// ErrEmptyModel indicates the embedding model name is empty.
	ErrEmptyModel = errors.New("model cannot be empty")
)
