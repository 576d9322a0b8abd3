package structure

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `UNDANG-UNDANG DASAR
NEGARA REPUBLIK INDONESIA

BAB I
Ketentuan Umum
Pasal 1
Isi pasal satu.
Pasal 2
Isi pasal dua.

BAB II
Hak Asasi Pasal 3 Setiap orang
berhak untuk hidup.

BAB III
Pasal 4
Isi pasal empat.

BAB IV
Dihapus
`

func TestExtract_Document(t *testing.T) {
	chapters := Extract(sampleDocument)
	require.Len(t, chapters, 4)

	t.Run("title and articles", func(t *testing.T) {
		c := chapters[0]
		assert.Equal(t, "BAB I", c.ID)
		assert.Equal(t, "Ketentuan Umum", c.Title)
		require.Len(t, c.Articles, 2)
		assert.Equal(t, "Pasal 1", c.Articles[0].ID)
		assert.Equal(t, "Isi pasal satu.", c.Articles[0].Text)
		assert.Equal(t, "Pasal 2", c.Articles[1].ID)
		assert.Equal(t, "Isi pasal dua.", c.Articles[1].Text)
		for _, a := range c.Articles {
			assert.Equal(t, "BAB I", a.ChapterID)
		}
	})

	t.Run("marker inside title line", func(t *testing.T) {
		c := chapters[1]
		assert.Equal(t, "Hak Asasi", c.Title)
		require.Len(t, c.Articles, 1)
		assert.Equal(t, "Pasal 3", c.Articles[0].ID)
		assert.Equal(t, "Setiap orang berhak untuk hidup.", c.Articles[0].Text)
	})

	t.Run("marker starts first line", func(t *testing.T) {
		c := chapters[2]
		assert.Empty(t, c.Title)
		require.Len(t, c.Articles, 1)
		assert.Equal(t, "Pasal 4", c.Articles[0].ID)
		assert.Equal(t, "Isi pasal empat.", c.Articles[0].Text)
	})

	t.Run("chapter without articles", func(t *testing.T) {
		c := chapters[3]
		assert.Equal(t, "BAB IV", c.ID)
		assert.Equal(t, "Dihapus", c.Title)
		assert.NotNil(t, c.Articles)
		assert.Empty(t, c.Articles)
	})
}

func TestExtract_Counts(t *testing.T) {
	chapters := Extract(sampleDocument)
	stats := Summarize(chapters)

	chapterMarkers := len(ChapterPattern.FindAllString(sampleDocument, -1))
	assert.Equal(t, chapterMarkers, stats.Chapters)
	assert.Equal(t, 4, stats.Articles)
	assert.Equal(t, 1, stats.EmptyChapters)
	assert.Equal(t, 1, stats.UntitledChapters)
}

func TestExtract_Idempotent(t *testing.T) {
	first := Extract(sampleDocument)
	second := Extract(sampleDocument)
	assert.Equal(t, first, second)
}

func TestExtract_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty document", ""},
		{"whitespace only", "  \n\t\n"},
		{"articles without chapters", "Pasal 1\nIsi.\nPasal 2\nIsi."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chapters := Extract(tt.raw)
			assert.NotNil(t, chapters)
			assert.Empty(t, chapters)
		})
	}
}

func TestExtract_IdentifierNormalization(t *testing.T) {
	chapters := Extract("bab   xiv\nPeralihan\npasal  28a isi")
	require.Len(t, chapters, 1)
	assert.Equal(t, "BAB XIV", chapters[0].ID)
	require.Len(t, chapters[0].Articles, 1)
	assert.Equal(t, "pasal 28a", chapters[0].Articles[0].ID)
	assert.Equal(t, "isi", chapters[0].Articles[0].Text)
}

func TestExtract_WordBoundaries(t *testing.T) {
	// "SEBAB V" and "Pasalnya" are ordinary words, not markers
	chapters := Extract("BAB I\nUmum\nSEBAB V diatur.\nPasal 1\nPasalnya berlaku.")
	require.Len(t, chapters, 1)
	require.Len(t, chapters[0].Articles, 1)
	assert.Equal(t, "Pasalnya berlaku.", chapters[0].Articles[0].Text)
}

func TestExtract_TitleEqualToIdentifier(t *testing.T) {
	e := NewExtractor(WithChapterPattern(regexp.MustCompile(`\bBAB\s+[IVXLCDM]+\b`)))

	chapters := e.Extract("BAB I\nBab  I\nPasal 1\nIsi.")
	require.Len(t, chapters, 1)
	assert.Empty(t, chapters[0].Title)
	require.Len(t, chapters[0].Articles, 1)
	assert.Equal(t, "Isi.", chapters[0].Articles[0].Text)
}

func TestExtract_CustomArticlePattern(t *testing.T) {
	e := NewExtractor(WithArticlePattern(regexp.MustCompile(`Article\s+\d+`)))

	chapters := e.Extract("BAB I\nGeneral Provisions\nArticle 1\nFirst.\nArticle 2\nSecond.")
	require.Len(t, chapters, 1)
	assert.Equal(t, "General Provisions", chapters[0].Title)
	require.Len(t, chapters[0].Articles, 2)
	assert.Equal(t, "Article 2", chapters[0].Articles[1].ID)
}

func TestExtract_InlineArticleMarker(t *testing.T) {
	chapters := Extract("BAB I\nKetentuan Umum\nPasal 1\nIsi pasal satu. Pasal 2\nIsi pasal dua.")
	require.Len(t, chapters, 1)

	c := chapters[0]
	assert.Equal(t, "BAB I", c.ID)
	assert.Equal(t, "Ketentuan Umum", c.Title)
	require.Len(t, c.Articles, 2)
	assert.Equal(t, "Pasal 1", c.Articles[0].ID)
	assert.Equal(t, "Isi pasal satu.", c.Articles[0].Text)
	assert.Equal(t, "Pasal 2", c.Articles[1].ID)
	assert.Equal(t, "Isi pasal dua.", c.Articles[1].Text)
}

func TestExtract_ArticleMarkerOnTitleLine(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTitle string
		wantIDs   []string
	}{
		{"marker ends the title", "BAB I Ketentuan Umum Pasal 1 Isi pasal satu.\nPasal 2 Isi pasal dua.", "Ketentuan Umum", []string{"Pasal 1", "Pasal 2"}},
		{"marker starts the line", "BAB I\nPasal 1 Isi pasal satu.", "", []string{"Pasal 1"}},
		{"marker right after the identifier", "BAB II Pasal 3 Isi.", "", []string{"Pasal 3"}},
		{"whole line without marker", "BAB I\nKetentuan Umum\nPasal 1 Isi.", "Ketentuan Umum", []string{"Pasal 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chapters := Extract(tt.raw)
			require.Len(t, chapters, 1)
			assert.Equal(t, tt.wantTitle, chapters[0].Title)

			ids := make([]string, 0, len(chapters[0].Articles))
			for _, a := range chapters[0].Articles {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
