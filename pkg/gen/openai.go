package gen

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"
)

var _ Provider = (*OpenAIProvider)(nil)

// OpenAIProvider implements Provider using the OpenAI chat completion API.
type OpenAIProvider struct {
	Client *openai.Client

	// Model is the chat model identifier, e.g. "gpt-4".
	Model string

	// Temperature, when non-zero, overrides the API default.
	Temperature float64

	// MaxTokens, when non-zero, caps the completion length.
	MaxTokens int
}

func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: p.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if p.Temperature > 0 {
		params.Temperature = param.NewOpt(p.Temperature)
	}
	if p.MaxTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(int64(p.MaxTokens))
	}

	resp, err := p.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai completion: no choices")
	}
	choice := resp.Choices[0]
	if choice.FinishReason == "length" {
		return "", errors.New("openai completion: truncated at max tokens")
	}
	return choice.Message.Content, nil
}
