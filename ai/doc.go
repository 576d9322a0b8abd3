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


// Package ai provides abstractions for the AI services used by HukumPedia.
//
// The retrieval core depends only on the interfaces defined here:
//
//   - Embedder: Generates vector embeddings from text
//   - AnswerComposer: Composes an answer from a question and retrieved articles
//   - AIProvider: Aggregates both for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: Implementation using OpenAI-compatible APIs (Ollama, vLLM, ...)
//   - ai/cached: Embedder decorator backed by a persistent embedding cache
//   - ai/mock: Test doubles for unit testing without external services
//
// Public constructors in ai/openai return interface types. Mock constructors
// return concrete types so tests can inject behavior and inspect call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "kedaulatan rakyat")
//	answer, err := provider.AnswerComposer().ComposeAnswer(ctx, question, excerpts)
package ai
