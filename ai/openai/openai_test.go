package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/hukumpedia/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	reply    string
	err      error
	empty    bool
	messages []llms.MessageContent
	options  llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.options)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.empty {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func (f *fakeModel) promptText(t *testing.T) string {
	t.Helper()
	require.Len(t, f.messages, 1)
	require.Len(t, f.messages[0].Parts, 1)
	part, ok := f.messages[0].Parts[0].(llms.TextContent)
	require.True(t, ok)
	return part.Text
}

type fakeBackend struct {
	vectors [][]float32
	err     error
	calls   int
}

func (f *fakeBackend) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

func (f *fakeBackend) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[0], nil
}

func TestAnswerComposer_ComposeAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("prompt carries question and excerpts", func(t *testing.T) {
		model := &fakeModel{reply: "Kedaulatan berada di tangan rakyat."}
		composer := newAnswerComposerWithModel(model, 0.3)

		answer, err := composer.ComposeAnswer(ctx, "Siapa pemegang kedaulatan?", "Bab: BAB I | Pasal 1\nKedaulatan berada di tangan rakyat.")
		require.NoError(t, err)
		assert.Equal(t, "Kedaulatan berada di tangan rakyat.", answer)

		prompt := model.promptText(t)
		assert.Contains(t, prompt, "expert in Indonesian legal documents")
		assert.Contains(t, prompt, "Question: Siapa pemegang kedaulatan?")
		assert.Contains(t, prompt, "Bab: BAB I | Pasal 1")
		assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[0].Role)
		assert.Equal(t, 0.3, model.options.Temperature)
	})

	t.Run("reasoning block removed", func(t *testing.T) {
		model := &fakeModel{reply: "<think>\nlet me check pasal 1\n</think>\n\nJawabannya rakyat."}
		composer := newAnswerComposerWithModel(model, 0)

		answer, err := composer.ComposeAnswer(ctx, "q", "c")
		require.NoError(t, err)
		assert.Equal(t, "Jawabannya rakyat.", answer)
	})

	t.Run("service error propagates", func(t *testing.T) {
		serviceErr := errors.New("connection refused")
		composer := newAnswerComposerWithModel(&fakeModel{err: serviceErr}, 0)

		_, err := composer.ComposeAnswer(ctx, "q", "c")
		assert.ErrorIs(t, err, serviceErr)
	})

	t.Run("no choices", func(t *testing.T) {
		composer := newAnswerComposerWithModel(&fakeModel{empty: true}, 0)

		_, err := composer.ComposeAnswer(ctx, "q", "c")
		assert.ErrorIs(t, err, ErrEmptyAnswer)
	})

	t.Run("only reasoning", func(t *testing.T) {
		composer := newAnswerComposerWithModel(&fakeModel{reply: "<think>hmm"}, 0)

		_, err := composer.ComposeAnswer(ctx, "q", "c")
		assert.ErrorIs(t, err, ErrEmptyAnswer)
	})
}

func TestEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("batch", func(t *testing.T) {
		backend := &fakeBackend{vectors: [][]float32{{1, 0}, {0, 1}}}
		e := newEmbedderWithBackend(backend, "mxbai-embed-large")

		got, err := e.EmbedTexts(ctx, []string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, backend.vectors, got)
	})

	t.Run("empty batch skips the service", func(t *testing.T) {
		backend := &fakeBackend{}
		e := newEmbedderWithBackend(backend, "mxbai-embed-large")

		got, err := e.EmbedTexts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, backend.calls)
	})

	t.Run("single", func(t *testing.T) {
		e := newEmbedderWithBackend(&fakeBackend{vectors: [][]float32{{0.5, 0.5}}}, "mxbai-embed-large")

		got, err := e.EmbedText(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5, 0.5}, got)
	})

	t.Run("error", func(t *testing.T) {
		backendErr := errors.New("model not found")
		e := newEmbedderWithBackend(&fakeBackend{err: backendErr}, "mxbai-embed-large")

		_, err := e.EmbedTexts(ctx, []string{"a"})
		assert.ErrorIs(t, err, backendErr)
		assert.ErrorContains(t, err, "mxbai-embed-large")
	})

	t.Run("model name", func(t *testing.T) {
		var e ai.Embedder = newEmbedderWithBackend(&fakeBackend{}, "nomic-embed-text")

		namer, ok := e.(ai.ModelNamer)
		require.True(t, ok)
		assert.Equal(t, "nomic-embed-text", namer.Model())
	})

	unexpected := []struct {
		name    string
		texts   []string
		vectors [][]float32
	}{
		{"fewer vectors than texts", []string{"a", "b"}, [][]float32{{1, 0}}},
		{"more vectors than texts", []string{"a"}, [][]float32{{1, 0}, {0, 1}}},
		{"mixed dimensions", []string{"a", "b"}, [][]float32{{1, 0}, {0, 1, 0}}},
		{"empty vector", []string{"a"}, [][]float32{{}}},
	}
	for _, tt := range unexpected {
		t.Run(tt.name, func(t *testing.T) {
			e := newEmbedderWithBackend(&fakeBackend{vectors: tt.vectors}, "mxbai-embed-large")

			_, err := e.EmbedTexts(ctx, tt.texts)
			assert.ErrorIs(t, err, ErrUnexpectedEmbeddings)
		})
	}

	t.Run("single text with no vector", func(t *testing.T) {
		e := newEmbedderWithBackend(&fakeBackend{vectors: [][]float32{}}, "mxbai-embed-large")

		_, err := e.EmbedText(ctx, "a")
		assert.ErrorIs(t, err, ErrUnexpectedEmbeddings)
	})
}

func TestStripReasoning(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  jawaban  ", "jawaban"},
		{"closed block", "<think>x</think>jawaban", "jawaban"},
		{"multiline block", "<think>\na\nb\n</think>\njawaban", "jawaban"},
		{"unterminated block", "jawaban <think>tail", "jawaban"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripReasoning(tt.in))
		})
	}
}

func TestScrubString(t *testing.T) {
	assert.Equal(t, "Pasal 1\nisi", scrubString(" \x00Pasal 1\nisi\x07 "))
}
