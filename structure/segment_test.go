package structure

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmenter_Segment(t *testing.T) {
	s := NewSegmenter(regexp.MustCompile(`#\d+`))

	tests := []struct {
		name       string
		text       string
		wantFiller string
		want       []Segment
	}{
		{
			name:       "no markers",
			text:       "plain text",
			wantFiller: "plain text",
			want:       nil,
		},
		{
			name:       "empty text",
			text:       "",
			wantFiller: "",
			want:       nil,
		},
		{
			name:       "leading filler",
			text:       "intro #1 one #2 two",
			wantFiller: "intro ",
			want: []Segment{
				{Marker: "#1", Body: " one "},
				{Marker: "#2", Body: " two"},
			},
		},
		{
			name:       "adjacent markers",
			text:       "#1#2 tail",
			wantFiller: "",
			want: []Segment{
				{Marker: "#1", Body: ""},
				{Marker: "#2", Body: " tail"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filler, got := s.Segment(tt.text)
			assert.Equal(t, tt.wantFiller, filler)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSegmenter_SegmentCoversText(t *testing.T) {
	s := NewSegmenter(ChapterPattern)
	text := "Pembukaan\nBAB I\nSatu\nBAB II\nDua\n"

	filler, segments := s.Segment(text)
	require.Len(t, segments, 2)

	rebuilt := filler
	for _, seg := range segments {
		rebuilt += seg.Marker + seg.Body
	}
	assert.Equal(t, text, rebuilt)
}
