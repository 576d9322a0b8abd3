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


// Package storage provides the storage abstraction for the embedding cache.
//
// Embedding a corpus of a few hundred articles is the slowest part of starting
// a session. EmbeddingCache keeps vectors between runs so that only new or
// changed texts reach the embedding service. Entries are keyed by
// core.EmbeddingID, so switching embedding models never returns stale vectors.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return the interface:
//
//	cache, err := badger.NewCache("/path/to/cache")  // returns storage.EmbeddingCache
//
// # Usage
//
//	cache, err := badger.NewMemoryCache()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines.
package storage
