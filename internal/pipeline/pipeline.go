// Package pipeline wires sources, chunking, merging and formatting into the
// end-to-end summarization run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"docdigest/internal/archive"
	"docdigest/internal/chunker"
	"docdigest/internal/format"
	"docdigest/internal/loader"
	"docdigest/internal/merge"
)

// Params collects the pipeline's collaborators and output settings. Source
// and Archive may be nil; everything else is required.
type Params struct {
	Source       loader.Source
	Chunker      chunker.Splitter
	Merger       *merge.HierarchicalMerger
	MinChunkSize int
	Style        string
	OutputFile   string
	Archive      *archive.Store
}

type Pipeline struct {
	source       loader.Source
	chunker      chunker.Splitter
	merger       *merge.HierarchicalMerger
	minChunkSize int
	style        string
	outputFile   string
	archive      *archive.Store
}

func New(p Params) *Pipeline {
	if p.MinChunkSize <= 0 {
		p.MinChunkSize = 100
	}
	if p.Style == "" {
		p.Style = format.StyleNarrative
	}
	return &Pipeline{
		source:       p.Source,
		chunker:      p.Chunker,
		merger:       p.Merger,
		minChunkSize: p.MinChunkSize,
		style:        p.Style,
		outputFile:   p.OutputFile,
		archive:      p.Archive,
	}
}

// Run loads documents from the configured source and reduces them to one
// formatted summary. No documents is an empty result, not an error.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	if p.source == nil {
		return "", fmt.Errorf("pipeline has no document source")
	}
	docs, err := p.source.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load documents: %w", err)
	}
	return p.SummarizeDocuments(ctx, docs)
}

// SummarizeTexts summarizes raw strings that did not come from a source.
func (p *Pipeline) SummarizeTexts(ctx context.Context, texts []string) (string, error) {
	docs := make([]loader.Document, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		docs = append(docs, loader.Document{Content: t})
	}
	return p.SummarizeDocuments(ctx, docs)
}

// SummarizeDocuments is the shared reduction path: chunk every document,
// merge the flat pool, format, and deliver to the configured sinks.
func (p *Pipeline) SummarizeDocuments(ctx context.Context, docs []loader.Document) (string, error) {
	if len(docs) == 0 {
		return "", nil
	}

	runID := uuid.NewString()
	start := time.Now()
	log.Printf("run %s: summarizing %d documents", runID, len(docs))

	var pool []string
	for _, doc := range docs {
		chunks := p.chunker.ChunkDocument(doc.Content, p.minChunkSize)
		if len(chunks) == 0 {
			continue
		}
		pool = append(pool, chunks...)
		if doc.Name != "" {
			log.Printf("run %s: document %s split into %d chunks", runID, doc.Name, len(chunks))
		}
	}
	if len(pool) == 0 {
		return "", nil
	}
	log.Printf("run %s: merging %d chunks", runID, len(pool))

	final := p.merger.Merge(ctx, pool)
	formatted := format.Render(final, p.style)

	if p.outputFile != "" {
		if err := os.WriteFile(p.outputFile, []byte(formatted), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", p.outputFile, err)
		}
	}

	elapsed := time.Since(start)
	if p.archive != nil {
		err := p.archive.SaveRun(ctx, archive.Run{
			ID:         runID,
			Style:      p.style,
			OutputPath: p.outputFile,
			Summary:    formatted,
			Documents:  len(docs),
			Chunks:     len(pool),
			Duration:   elapsed,
		})
		if err != nil {
			log.Printf("warning: failed to archive run %s: %v", runID, err)
		}
	}

	log.Printf("run %s: finished in %s", runID, elapsed.Round(time.Millisecond))
	return formatted, nil
}
