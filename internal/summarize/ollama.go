package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Ollama drives a local Ollama server through its generate API.
type Ollama struct {
	client  *http.Client
	baseURL string
	model   string
	prompts *PromptBuilder

	temperature     float64
	topP            float64
	numPredictPair  int
	numPredictFinal int
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

func NewOllama(opts Options) *Ollama {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = "http://127.0.0.1:11434"
	}
	base = strings.TrimRight(base, "/")

	return &Ollama{
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL:         base,
		model:           opts.Model,
		prompts:         NewPromptBuilder(opts.SystemPrompt, opts.MergePrompt, opts.FinalPrompt),
		temperature:     opts.Temperature,
		topP:            opts.TopP,
		numPredictPair:  opts.NumPredictPair,
		numPredictFinal: opts.NumPredictFinal,
	}
}

// ListModels asks the server which models it can serve. Used at startup for
// a non-fatal availability warning.
func (o *Ollama) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ollama tags request failed (%d)", resp.StatusCode)
	}

	var parsed ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(parsed.Models))
	for _, m := range parsed.Models {
		if m.Name != "" {
			names = append(names, m.Name)
		} else if m.Model != "" {
			names = append(names, m.Model)
		}
	}
	return names, nil
}

func (o *Ollama) Summarize(ctx context.Context, text string, final bool) (string, error) {
	if strings.TrimSpace(o.model) == "" {
		return "", fmt.Errorf("ollama generation model is required")
	}

	numPredict := o.numPredictPair
	if final {
		numPredict = o.numPredictFinal
	}

	reqBody := ollamaGenerateRequest{
		Model:  o.model,
		Prompt: o.prompts.Build(text, final),
		Stream: false,
		Options: map[string]any{
			"temperature": o.temperature,
			"top_p":       o.topP,
			"num_predict": numPredict,
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama generate request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed ollamaGenerateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("ollama: %s", parsed.Error)
	}
	return cleanModelOutput(parsed.Response), nil
}
