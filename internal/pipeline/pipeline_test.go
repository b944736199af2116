package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdigest/internal/archive"
	"docdigest/internal/chunker"
	"docdigest/internal/loader"
	"docdigest/internal/merge"
)

type stubSource struct {
	docs []loader.Document
}

func (s *stubSource) Load(context.Context) ([]loader.Document, error) { return s.docs, nil }

// joinSummarizer glues pair halves together so content survival is checkable.
type joinSummarizer struct{}

func (joinSummarizer) Summarize(_ context.Context, text string, _ bool) (string, error) {
	return strings.Replace(text, "\n\n", " | ", 1), nil
}

func newTestPipeline(t *testing.T, docs []loader.Document, style string) (*Pipeline, string) {
	t.Helper()
	outPath := filepath.Join(t.TempDir(), "summary.txt")
	p := New(Params{
		Source:       &stubSource{docs: docs},
		Chunker:      chunker.NewSmartChunker(5000, 200),
		Merger:       merge.NewHierarchicalMerger(joinSummarizer{}, 4, false),
		MinChunkSize: 10,
		Style:        style,
		OutputFile:   outPath,
	})
	return p, outPath
}

func TestPipeline_RunEndToEnd(t *testing.T) {
	docs := []loader.Document{
		{Name: "a.txt", Content: "the first document talks about chunking strategies"},
		{Name: "b.txt", Content: "the second document talks about merge reduction"},
	}
	p, outPath := newTestPipeline(t, docs, "narrative")

	got, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, got, "chunking strategies")
	assert.Contains(t, got, "merge reduction")

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, got, string(written))
}

func TestPipeline_EmptySourceWritesNothing(t *testing.T) {
	p, outPath := newTestPipeline(t, nil, "narrative")

	got, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPipeline_WhitespaceDocumentsContributeNothing(t *testing.T) {
	docs := []loader.Document{
		{Name: "blank.txt", Content: "   \n  "},
	}
	p, _ := newTestPipeline(t, docs, "narrative")

	got, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestPipeline_SummarizeTexts(t *testing.T) {
	p, _ := newTestPipeline(t, nil, "narrative")

	got, err := p.SummarizeTexts(context.Background(), []string{
		"a note about parallel summarization",
		"",
		"   ",
		"another note about document loaders",
	})
	require.NoError(t, err)
	assert.Contains(t, got, "parallel summarization")
	assert.Contains(t, got, "document loaders")
}

func TestPipeline_BulletStyle(t *testing.T) {
	docs := []loader.Document{
		{Name: "a.txt", Content: "only one short document here"},
	}
	p, _ := newTestPipeline(t, docs, "bullets")

	got, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "- "), "bullet style output: %q", got)
}

func TestPipeline_ArchivesRun(t *testing.T) {
	store, err := archive.NewStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	p := New(Params{
		Source:       &stubSource{docs: []loader.Document{{Name: "a.txt", Content: "archived content sample"}}},
		Chunker:      chunker.NewSmartChunker(5000, 200),
		Merger:       merge.NewHierarchicalMerger(joinSummarizer{}, 2, false),
		MinChunkSize: 10,
		Archive:      store,
	})

	got, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, got)

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, got, runs[0].Summary)
	assert.Equal(t, 1, runs[0].Documents)
}
