package rag

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-memory cosine-similarity store, used in tests and for
// small corpora that do not warrant a qdrant instance.
type MemoryStore struct {
	mu    sync.RWMutex
	items []memoryItem
}

type memoryItem struct {
	text   string
	source string
	vector []float32
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Add(text, source string, vector []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, memoryItem{text: text, source: source, vector: vector})
}

func (m *MemoryStore) Search(_ context.Context, vector []float32, topK int, scoreThreshold float64) ([]SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]SearchResult, 0, len(m.items))
	for _, item := range m.items {
		score := cosine(vector, item.vector)
		if score < scoreThreshold {
			continue
		}
		results = append(results, SearchResult{Text: item.text, Source: item.source, Score: score})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
