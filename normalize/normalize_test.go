package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"stopwords removed", "Dan Atau Yang DPR", "dpr"},
		{"punctuation stripped", "Negara Indonesia ialah Negara Kesatuan, yang berbentuk Republik.", "negara indonesia ialah negara kesatuan berbentuk republik"},
		{"whitespace collapsed", "  hak\tasasi\n\nmanusia  ", "hak asasi manusia"},
		{"unicode punctuation", "“Kedaulatan” berada di tangan rakyat…", "kedaulatan berada tangan rakyat"},
		{"hyphen joins words", "undang-undang", "undangundang"},
		{"only stopwords", "dan atau yang", ""},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
		{"digits kept", "Pasal 28A ayat (1)", "pasal 28a ayat 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.input))
		})
	}
}

func TestText_Deterministic(t *testing.T) {
	input := "Presiden Republik Indonesia memegang kekuasaan pemerintahan menurut Undang-Undang Dasar."
	assert.Equal(t, Text(input), Text(input))
	assert.Equal(t, Text(input), Text(Text(input)))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"majelis", "permusyawaratan", "rakyat"}, Tokens("Majelis Permusyawaratan Rakyat"))
	assert.Empty(t, Tokens("di ke dari"))
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("yang"))
	assert.True(t, IsStopword("dan"))
	assert.False(t, IsStopword("negara"))
	assert.False(t, IsStopword("Yang"))
}
