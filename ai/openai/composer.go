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


package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/hukumpedia/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/prompts"
)

// ErrEmptyAnswer is returned when the model produces no usable answer text.
var ErrEmptyAnswer = errors.New("model returned an empty answer")

// AnswerComposer implements ai.AnswerComposer using OpenAI-compatible chat APIs.
type AnswerComposer struct {
	client      llms.Model
	prompt      prompts.PromptTemplate
	temperature float64
	logger      *slog.Logger
}

// newAnswerComposer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnswerComposer(config *ai.Config) (*AnswerComposer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ComposerHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ComposerModel),
	)
	if err != nil {
		return nil, err
	}

	return newAnswerComposerWithModel(client, config.Temperature), nil
}

func newAnswerComposerWithModel(client llms.Model, temperature float64) *AnswerComposer {
	return &AnswerComposer{
		client:      client,
		prompt:      newAnswerPrompt(),
		temperature: temperature,
		logger:      slog.Default().With("component", "openai-composer"),
	}
}

// NewAnswerComposer creates a new answer composer using the provided configuration.
//
// Returns ai.AnswerComposer interface to enforce abstraction.
func NewAnswerComposer(config *ai.Config) (ai.AnswerComposer, error) {
	return newAnswerComposer(config)
}

// ComposeAnswer asks the model to answer question from the given article excerpts.
// Reasoning blocks emitted by thinking models are removed from the answer.
func (c *AnswerComposer) ComposeAnswer(ctx context.Context, question, excerpts string) (string, error) {
	text, err := buildAnswerPrompt(c.prompt, scrubString(question), scrubString(excerpts))
	if err != nil {
		return "", err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(c.temperature))
	if err != nil {
		c.logger.Error("failed to generate answer", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return "", ErrEmptyAnswer
	}

	answer := stripReasoning(response.Choices[0].Content)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	c.logger.Debug("composed answer", "question_length", len(question), "answer_length", len(answer))
	return answer, nil
}
