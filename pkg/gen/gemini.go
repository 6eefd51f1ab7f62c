package gen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"
)

var _ Provider = (*GeminiProvider)(nil)

// GeminiProvider implements Provider using the Google Gemini API.
type GeminiProvider struct {
	Client *genai.Client

	// Model should not start with "models/".
	Model string

	// Temperature, when non-nil, overrides the API default.
	Temperature *float32

	// MaxTokens, when non-zero, caps the generated length.
	MaxTokens int
}

func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if p.Temperature != nil {
		cfg.Temperature = p.Temperature
	}
	if p.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(p.MaxTokens)
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{genai.NewPartFromText(prompt)}},
	}
	resp, err := p.Client.Models.GenerateContent(ctx, p.Model, contents, cfg)
	if err != nil {
		if e, ok := err.(*apierror.APIError); ok {
			err = e.Unwrap()
		}
		return "", fmt.Errorf("gemini completion: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini completion: no candidates")
	}
	cand := resp.Candidates[0]
	switch cand.FinishReason {
	case genai.FinishReasonStop, genai.FinishReasonUnspecified:
	case genai.FinishReasonMaxTokens:
		return "", errors.New("gemini completion: truncated at max tokens")
	default:
		return "", fmt.Errorf("gemini completion: unexpected finish reason: %s", cand.FinishReason)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
