package merge

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSummarizer joins the two halves of a pair with "+" so the reduction
// tree stays inspectable. failOn makes calls containing that substring fail.
type stubSummarizer struct {
	calls  atomic.Int64
	failOn string

	mu        sync.Mutex
	active    int
	maxActive int
}

func (s *stubSummarizer) Summarize(_ context.Context, text string, _ bool) (string, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.active++
	if s.active > s.maxActive {
		s.maxActive = s.active
	}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.active--
		s.mu.Unlock()
	}()

	if s.failOn != "" && strings.Contains(text, s.failOn) {
		return "", errors.New("backend unavailable")
	}
	return strings.Replace(text, "\n\n", "+", 1), nil
}

func TestMerge_Empty(t *testing.T) {
	s := &stubSummarizer{}
	m := NewHierarchicalMerger(s, 4, false)

	assert.Equal(t, "", m.Merge(context.Background(), nil))
	assert.EqualValues(t, 0, s.calls.Load())
}

func TestMerge_Singleton(t *testing.T) {
	s := &stubSummarizer{}
	m := NewHierarchicalMerger(s, 4, false)

	assert.Equal(t, "only", m.Merge(context.Background(), []string{"only"}))
	assert.EqualValues(t, 0, s.calls.Load())
}

func TestMerge_PairOfTwo(t *testing.T) {
	s := &stubSummarizer{}
	m := NewHierarchicalMerger(s, 4, false)

	got := m.Merge(context.Background(), []string{"A", "B"})
	assert.Equal(t, "A+B", got)
	assert.EqualValues(t, 1, s.calls.Load())
}

func TestMerge_OddTailCarriedVerbatim(t *testing.T) {
	s := &stubSummarizer{}
	m := NewHierarchicalMerger(s, 4, false)

	// round 1: (a,b) summarized, c carried; round 2: single pair
	got := m.Merge(context.Background(), []string{"a", "b", "c"})
	assert.Equal(t, "a+b+c", got)
	assert.EqualValues(t, 2, s.calls.Load())
}

func TestMerge_FiveChunks(t *testing.T) {
	s := &stubSummarizer{}
	m := NewHierarchicalMerger(s, 4, false)

	got := m.Merge(context.Background(), []string{"A", "B", "C", "D", "E"})

	// ceil(log2(5)) = 3 rounds, level sizes 5 -> 3 -> 2 -> 1,
	// so 2 + 1 + 1 backend calls regardless of completion order.
	assert.EqualValues(t, 4, s.calls.Load())
	for _, letter := range []string{"A", "B", "C", "D", "E"} {
		assert.Equal(t, 1, strings.Count(got, letter), "each chunk appears exactly once")
	}
}

func TestMerge_PairFailureIsolated(t *testing.T) {
	s := &stubSummarizer{failOn: "B"}
	m := NewHierarchicalMerger(s, 4, false)

	// (A,B) fails and is dropped, (C,D) survives alone.
	got := m.Merge(context.Background(), []string{"A", "B", "C", "D"})
	assert.Equal(t, "C+D", got)
	assert.EqualValues(t, 2, s.calls.Load())
}

func TestMerge_TotalBackendFailure(t *testing.T) {
	s := &stubSummarizer{failOn: "chunk"}
	m := NewHierarchicalMerger(s, 4, false)

	got := m.Merge(context.Background(), []string{"chunk one", "chunk two", "chunk three", "chunk four"})
	assert.Equal(t, "", got)
}

func TestMerge_ShufflePreservesContent(t *testing.T) {
	s := &stubSummarizer{}
	m := NewHierarchicalMerger(s, 4, true)

	chunks := []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6"}
	got := m.Merge(context.Background(), chunks)
	for _, c := range chunks {
		assert.Contains(t, got, c)
	}
	// input slice is not mutated by the shuffle
	assert.Equal(t, []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6"}, chunks)
}

func TestMerge_WorkerBoundRespected(t *testing.T) {
	s := &stubSummarizer{}
	m := NewHierarchicalMerger(s, 2, false)

	chunks := make([]string, 16)
	for i := range chunks {
		chunks[i] = strings.Repeat("x", i+1)
	}
	m.Merge(context.Background(), chunks)

	require.Positive(t, s.calls.Load())
	assert.LessOrEqual(t, s.maxActive, 2)
}
