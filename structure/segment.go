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

import "regexp"

// Segment is a marker paired with the body text that follows it.
type Segment struct {
	Marker string
	Body   string
}

// Segmenter splits text on a marker pattern.
type Segmenter struct {
	marker *regexp.Regexp
}

// NewSegmenter creates a segmenter for the given marker pattern.
func NewSegmenter(marker *regexp.Regexp) *Segmenter {
	return &Segmenter{marker: marker}
}

// Segment returns the text preceding the first marker and the ordered
// (marker, body) pairs. Each body runs up to the next marker or the end of text.
// Without any marker the whole text is filler and no segments are returned.
func (s *Segmenter) Segment(text string) (string, []Segment) {
	matches := s.marker.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	filler := text[:matches[0][0]]
	segments := make([]Segment, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		segments = append(segments, Segment{
			Marker: text[m[0]:m[1]],
			Body:   text[m[1]:end],
		})
	}
	return filler, segments
}
