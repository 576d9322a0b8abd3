package openai

import (
	"github.com/tmc/langchaingo/prompts"
)

// answerPromptTemplate frames the model as a legal expert and grounds it in the
// retrieved articles.
const answerPromptTemplate = `You are an expert in Indonesian legal documents and government regulations.

Here are some relevant legal document excerpts:
{{.excerpts}}

Please answer the following legal question accurately using the above information.
If the excerpts do not contain the answer, say so instead of guessing.
Answer in the language the question was asked in.

Question: {{.question}}
`

func newAnswerPrompt() prompts.PromptTemplate {
	return prompts.NewPromptTemplate(answerPromptTemplate, []string{"excerpts", "question"})
}

// buildAnswerPrompt renders the answer prompt for a question and its context.
func buildAnswerPrompt(tmpl prompts.PromptTemplate, question, excerpts string) (string, error) {
	return tmpl.Format(map[string]any{
		"excerpts": excerpts,
		"question": question,
	})
}
