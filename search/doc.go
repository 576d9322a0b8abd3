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


// Package search provides coarse-to-fine semantic retrieval over a chapter
// and article hierarchy.
//
// A Retriever first finds the chapter nearest to the query. When that chapter
// is close enough (squared Euclidean distance below the threshold) the article
// search is scoped to its articles; otherwise every article is searched. A
// scope that turns out to be empty silently widens to the whole corpus.
//
// Narrowing to a chapter improves precision on legal text, where the same
// vocabulary recurs across many articles. The threshold depends on the
// embedding model and should be recalibrated when the model changes.
package search
