package summarize

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini implements Summarizer using Gemini text generation.
type Gemini struct {
	client  *genai.Client
	model   string
	prompts *PromptBuilder
}

func NewGemini(ctx context.Context, opts Options) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{
		client:  client,
		model:   opts.Model,
		prompts: NewPromptBuilder(opts.SystemPrompt, opts.MergePrompt, opts.FinalPrompt),
	}, nil
}

func (s *Gemini) Summarize(ctx context.Context, text string, final bool) (string, error) {
	contents := genai.Text(s.prompts.Build(text, final))
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", err
	}
	out := resp.Text()
	if out == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return cleanModelOutput(out), nil
}
