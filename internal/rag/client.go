package rag

import (
	"context"
	"fmt"
	"strings"
)

// Generator produces an answer from a fully-built prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client answers questions from a vector store of previously indexed chunks.
type Client struct {
	embedder  Embedder
	store     VectorStore
	generator Generator

	topK           int
	scoreThreshold float64
}

func NewClient(embedder Embedder, store VectorStore, generator Generator, topK int, scoreThreshold float64) *Client {
	if topK <= 0 {
		topK = 3
	}
	return &Client{
		embedder:       embedder,
		store:          store,
		generator:      generator,
		topK:           topK,
		scoreThreshold: scoreThreshold,
	}
}

// RetrieveContext returns the chunks most similar to the question.
func (c *Client) RetrieveContext(ctx context.Context, question string) ([]SearchResult, error) {
	vectors, err := c.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}
	return c.store.Search(ctx, vectors[0], c.topK, c.scoreThreshold)
}

// Ask retrieves context and generates a grounded answer. With no relevant
// context the model is still asked, but instructed to say it does not know.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	results, err := c.RetrieveContext(ctx, question)
	if err != nil {
		return "", err
	}
	answer, err := c.generator.Generate(ctx, buildAnswerPrompt(question, results))
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func buildAnswerPrompt(question string, results []SearchResult) string {
	var sb strings.Builder
	sb.WriteString("Answer the question using ONLY the context below. ")
	sb.WriteString("If the context does not contain the answer, say you do not know.\n\n")

	if len(results) == 0 {
		sb.WriteString("Context: (no relevant documents found)\n")
	} else {
		sb.WriteString("Context:\n")
		for i, r := range results {
			source := r.Source
			if source == "" {
				source = "unknown"
			}
			fmt.Fprintf(&sb, "[%d] (source: %s, score: %.2f)\n%s\n\n", i+1, source, r.Score, r.Text)
		}
	}

	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}
