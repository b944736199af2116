// Package merge reduces an arbitrary number of text chunks to a single
// summary through rounds of concurrent pairwise summarization.
package merge

import (
	"context"
	"log"
	"math/rand"
	"sync"
)

// Summarizer is the text-generation capability the merger reduces through.
// Implementations must be safe for concurrent use.
type Summarizer interface {
	Summarize(ctx context.Context, text string, final bool) (string, error)
}

// HierarchicalMerger condenses a pool of chunks by pairing adjacent texts
// and summarizing each pair, round after round, until one text remains.
type HierarchicalMerger struct {
	summarizer Summarizer
	maxWorkers int
	shuffle    bool
}

func NewHierarchicalMerger(s Summarizer, maxWorkers int, shuffle bool) *HierarchicalMerger {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	return &HierarchicalMerger{
		summarizer: s,
		maxWorkers: maxWorkers,
		shuffle:    shuffle,
	}
}

// Merge runs the reduction. An empty pool yields "", a singleton is returned
// untouched with no backend call. Per-pair failures are logged and the pair
// is dropped from the next round; the whole reduction never errors, it only
// degrades toward emptier output.
func (m *HierarchicalMerger) Merge(ctx context.Context, chunks []string) string {
	if len(chunks) == 0 {
		return ""
	}
	if len(chunks) == 1 {
		return chunks[0]
	}

	level := make([]string, len(chunks))
	copy(level, chunks)

	// One-time permutation so that chunks from the same document do not
	// systematically get merged with each other first.
	if m.shuffle {
		rand.Shuffle(len(level), func(i, j int) {
			level[i], level[j] = level[j], level[i]
		})
	}

	for len(level) > 1 {
		level = m.reduceRound(ctx, level)
	}

	if len(level) == 0 {
		return ""
	}
	return level[0]
}

// reduceRound dispatches every adjacent pair through the worker pool and
// assembles the next level in completion order. An odd trailing element is
// carried forward as-is.
func (m *HierarchicalMerger) reduceRound(ctx context.Context, level []string) []string {
	pairCount := len(level) / 2
	results := make(chan string, pairCount)
	sem := make(chan struct{}, m.maxWorkers)

	var wg sync.WaitGroup
	for i := 0; i+1 < len(level); i += 2 {
		wg.Add(1)
		go func(left, right string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			merged, err := m.summarizer.Summarize(ctx, left+"\n\n"+right, false)
			if err != nil {
				log.Printf("merge: pair summarization failed: %v", err)
				return
			}
			results <- merged
		}(level[i], level[i+1])
	}
	wg.Wait()
	close(results)

	next := make([]string, 0, pairCount+1)
	for merged := range results {
		next = append(next, merged)
	}
	if len(level)%2 == 1 {
		next = append(next, level[len(level)-1])
	}
	return next
}
