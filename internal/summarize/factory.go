package summarize

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
)

// NewSummarizer builds the configured backend. Unknown providers are an
// error; a missing provider defaults to ollama.
func NewSummarizer(ctx context.Context, opts Options) (Summarizer, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "ollama"
	}

	switch provider {
	case "ollama":
		o := NewOllama(opts)
		warnIfModelMissing(ctx, o)
		return o, nil
	case "openai":
		return NewOpenAI(opts), nil
	case "gemini":
		return NewGemini(ctx, opts)
	default:
		return nil, fmt.Errorf("unsupported summarizer provider: %s", opts.Provider)
	}
}

// warnIfModelMissing checks the server's model list. Any failure here is a
// warning only; generation is still attempted with the configured model.
func warnIfModelMissing(ctx context.Context, o *Ollama) {
	names, err := o.ListModels(ctx)
	if err != nil {
		log.Printf("warning: could not list ollama models: %v", err)
		return
	}
	if len(names) > 0 && !slices.Contains(names, o.model) {
		log.Printf("warning: model %q not found on server (available: %s)", o.model, strings.Join(names, ", "))
	}
}
