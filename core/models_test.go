package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "negara indonesia ialah negara kesatuan berbentuk republik",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestEmbeddingID_ModelScoped(t *testing.T) {
	a := EmbeddingID("model-a", "kedaulatan rakyat")
	b := EmbeddingID("model-b", "kedaulatan rakyat")
	if a == b {
		t.Errorf("EmbeddingID() should differ across models")
	}
	if a != EmbeddingID("model-a", "kedaulatan rakyat") {
		t.Errorf("EmbeddingID() should be deterministic")
	}
}

func TestChapter_Label(t *testing.T) {
	tests := []struct {
		name    string
		chapter Chapter
		want    string
	}{
		{
			name:    "with title",
			chapter: Chapter{ID: "BAB I", Title: "Bentuk dan Kedaulatan"},
			want:    "BAB I Bentuk dan Kedaulatan",
		},
		{
			name:    "without title",
			chapter: Chapter{ID: "BAB IV"},
			want:    "BAB IV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chapter.Label(); got != tt.want {
				t.Errorf("Chapter.Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArticle_InChapter(t *testing.T) {
	article := &Article{ID: "Pasal 1", ChapterID: "BAB I"}

	if !article.InChapter("bab i") {
		t.Errorf("InChapter() should match case-insensitively")
	}
	if article.InChapter("BAB II") {
		t.Errorf("InChapter() matched a different chapter")
	}
	if article.InChapter("BAB I ") {
		t.Errorf("InChapter() should require an exact match")
	}
}

func TestFlatten(t *testing.T) {
	chapters := []*Chapter{
		{ID: "BAB I", Articles: []*Article{{ID: "Pasal 1", ChapterID: "BAB I"}, {ID: "Pasal 2", ChapterID: "BAB I"}}},
		{ID: "BAB II"},
		{ID: "BAB III", Articles: []*Article{{ID: "Pasal 3", ChapterID: "BAB III"}}},
	}

	articles := Flatten(chapters)
	if len(articles) != 3 {
		t.Fatalf("Flatten() returned %d articles, want 3", len(articles))
	}
	want := []string{"Pasal 1", "Pasal 2", "Pasal 3"}
	for i, w := range want {
		if articles[i].ID != w {
			t.Errorf("articles[%d] = %q, want %q", i, articles[i].ID, w)
		}
	}

	if got := Flatten(nil); len(got) != 0 {
		t.Errorf("Flatten(nil) returned %d articles", len(got))
	}
}
