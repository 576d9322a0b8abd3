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


// Package normalize prepares Indonesian legal text for embedding.
package normalize

import (
	"strings"
	"unicode"
)

// punctuation is the ASCII punctuation set stripped from text. Unicode
// punctuation (quotes, dashes) is stripped as well.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var stopWords = map[string]bool{
	"dan": true, "atau": true, "yang": true, "di": true, "ke": true,
	"dari": true, "untuk": true, "dengan": true, "pada": true, "dalam": true,
	"ini": true, "itu": true, "adalah": true, "oleh": true, "sebagai": true,
	"tersebut": true, "akan": true, "juga": true, "serta": true, "bagi": true,
	"para": true, "secara": true,
}

// IsStopword reports whether a lowercase token is dropped during normalization.
func IsStopword(token string) bool {
	return stopWords[token]
}

// Text lowercases s, strips punctuation, drops stopwords and joins the
// surviving tokens with single spaces.
func Text(s string) string {
	return strings.Join(Tokens(s), " ")
}

// Tokens returns the tokens of s that survive normalization, in order.
func Tokens(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) || unicode.IsPunct(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)

	words := strings.Fields(cleaned)
	filtered := make([]string, 0, len(words))
	for _, word := range words {
		if !stopWords[word] {
			filtered = append(filtered, word)
		}
	}
	return filtered
}
