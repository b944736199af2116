// Package rag is the retrieval question-answering client: embed a question,
// search a vector store for similar chunks, and ask the generation model to
// answer from that context. It shares nothing with the summarization core
// beyond the Ollama server.
package rag

import "context"

// Embedder converts texts to vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// SearchResult is one retrieved chunk with its similarity score.
type SearchResult struct {
	Text   string
	Source string
	Score  float64
}

// VectorStore retrieves stored chunks by vector similarity.
type VectorStore interface {
	Search(ctx context.Context, vector []float32, topK int, scoreThreshold float64) ([]SearchResult, error)
}
