package core

import (
	"errors"
	"testing"
)

func TestValidateChapter(t *testing.T) {
	tests := []struct {
		name    string
		chapter *Chapter
		wantErr error
	}{
		{
			name: "valid chapter",
			chapter: &Chapter{
				ID:    "BAB I",
				Title: "Bentuk dan Kedaulatan",
				Articles: []*Article{
					{ID: "Pasal 1", Text: "Negara Indonesia ialah Negara Kesatuan.", ChapterID: "BAB I"},
				},
			},
			wantErr: nil,
		},
		{
			name:    "valid chapter without articles",
			chapter: &Chapter{ID: "BAB IV"},
			wantErr: nil,
		},
		{
			name:    "nil chapter",
			chapter: nil,
			wantErr: ErrInvalidChapter,
		},
		{
			name:    "blank identifier",
			chapter: &Chapter{ID: "  "},
			wantErr: ErrEmptyIdentifier,
		},
		{
			name: "article without identifier",
			chapter: &Chapter{
				ID:       "BAB I",
				Articles: []*Article{{Text: "orphan", ChapterID: "BAB I"}},
			},
			wantErr: ErrInvalidArticle,
		},
		{
			name: "article pointing at another chapter",
			chapter: &Chapter{
				ID:       "BAB I",
				Articles: []*Article{{ID: "Pasal 1", ChapterID: "BAB II"}},
			},
			wantErr: ErrChapterMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChapter(tt.chapter)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChapter() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateChapter() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChapter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateArticle(t *testing.T) {
	tests := []struct {
		name    string
		article *Article
		wantErr error
	}{
		{"valid article", &Article{ID: "Pasal 28A", Text: "Setiap orang berhak untuk hidup."}, nil},
		{"empty text is allowed", &Article{ID: "Pasal 2"}, nil},
		{"nil article", nil, ErrInvalidArticle},
		{"empty identifier", &Article{Text: "text"}, ErrEmptyIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArticle(tt.article)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateArticle() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateArticle() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCachedEmbedding(t *testing.T) {
	tests := []struct {
		name      string
		embedding *CachedEmbedding
		wantErr   error
	}{
		{"valid", &CachedEmbedding{Id: 1, Model: "embeddinggemma", Vector: []float32{0.1}}, nil},
		{"nil", nil, ErrInvalidEmbedding},
		{"missing model", &CachedEmbedding{Vector: []float32{0.1}}, ErrEmptyModel},
		{"empty vector", &CachedEmbedding{Model: "embeddinggemma"}, ErrEmptyVector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCachedEmbedding(tt.embedding)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCachedEmbedding() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCachedEmbedding() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
