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


// Package structure extracts the chapter and article hierarchy of a legal
// document from plain text and reads or writes it in the exported JSON format.
//
// # Segmentation
//
// Both levels of the hierarchy are found with the same capturing segmenter.
// Given a marker pattern, Segment scans the text for every marker and pairs it
// with the body that follows it up to the next marker:
//
//	filler | BAB I | body ... | BAB II | body ...
//
// Text before the first marker is returned separately as filler and ignored by
// the extractor.
//
// # Extraction
//
// Extract splits a document on chapter markers ("BAB" followed by a roman
// numeral), takes the first non-blank line of each chapter body as its title,
// and splits the remainder on article markers ("Pasal" followed by a number and
// optional letters). Article text is whitespace-collapsed.
//
//	chapters := structure.Extract(text)
//	for _, ch := range chapters {
//	    fmt.Println(ch.ID, ch.Title, len(ch.Articles))
//	}
//
// Documents without markers produce an empty result rather than an error.
//
// # Export
//
// WriteJSON and ReadJSON use the corpus format
//
//	[{"bab": "BAB I", "judul": "...", "pasal_list": [{"pasal": "Pasal 1", "teks": "..."}]}]
package structure
