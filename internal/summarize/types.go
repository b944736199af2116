package summarize

import "context"

// Summarizer condenses one text (usually two fragments joined by a blank
// line) into a shorter one. The final flag selects the terminal prompt and
// a larger generation budget. Implementations must be safe for concurrent
// use from multiple goroutines.
type Summarizer interface {
	Summarize(ctx context.Context, text string, final bool) (string, error)
}

// Options configures a summarization backend.
type Options struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string

	Temperature     float64
	TopP            float64
	NumPredictPair  int
	NumPredictFinal int

	// Prompt overrides; empty fields fall back to the package defaults.
	SystemPrompt string
	MergePrompt  string
	FinalPrompt  string
}
