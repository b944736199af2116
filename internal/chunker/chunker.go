package chunker

import (
	"regexp"
	"strings"
)

// Splitter produces bounded, boundary-respecting chunks from raw text.
// SmartChunker is the built-in implementation; anything that honours the
// same size bound can be dropped in at the pipeline level.
type Splitter interface {
	ChunkText(text string) []string
	ChunkDocument(content string, minChunkSize int) []string
}

// separators ordered from coarsest to finest. The first one found late
// enough in the window wins.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", "; ", ", ", " "}

var whitespace = regexp.MustCompile(`\s+`)

// SmartChunker splits text into model-sized chunks while keeping paragraph
// and sentence boundaries intact where it can.
type SmartChunker struct {
	maxChunkSize int
	overlap      int
	sampler      Sampler
}

func NewSmartChunker(maxChunkSize, overlap int) *SmartChunker {
	if maxChunkSize <= 0 {
		maxChunkSize = 5000
	}
	if overlap < 0 {
		overlap = 200
	}
	return &SmartChunker{
		maxChunkSize: maxChunkSize,
		overlap:      overlap,
		sampler:      HeadMiddleTailSampler{},
	}
}

// NewSmartChunkerWithSampler overrides the post-coalescing sampling policy.
// Pass KeepAllSampler to disable the lossy head/middle/tail selection.
func NewSmartChunkerWithSampler(maxChunkSize, overlap int, sampler Sampler) *SmartChunker {
	c := NewSmartChunker(maxChunkSize, overlap)
	c.sampler = sampler
	return c
}

// ChunkText splits text into raw chunks of at most maxChunkSize characters,
// cutting at the nearest preceding separator that lies past 60% of the
// window. Consecutive chunks overlap by up to c.overlap characters so that
// context survives the cut.
func (c *SmartChunker) ChunkText(text string) []string {
	cleaned := whitespace.ReplaceAllString(strings.TrimSpace(text), " ")
	if cleaned == "" {
		return nil
	}

	var chunks []string
	start := 0
	length := len(cleaned)

	for start < length {
		end := start + c.maxChunkSize
		if end >= length {
			chunks = append(chunks, cleaned[start:])
			break
		}

		// Scan separator kinds coarsest-first; within a kind take the
		// nearest match before the window end.
		bestBreak := end
		for _, sep := range separators {
			pos := strings.LastIndex(cleaned[start:end], sep)
			if pos == -1 {
				continue
			}
			if float64(pos) > float64(c.maxChunkSize)*0.6 {
				bestBreak = start + pos + len(sep)
				break
			}
		}

		chunks = append(chunks, cleaned[start:bestBreak])

		// Re-include the tail of this chunk at the start of the next one.
		// The cursor must still strictly advance, so a too-large overlap
		// degrades to no overlap rather than stalling the loop.
		if next := bestBreak - c.overlap; next > start {
			start = next
		} else {
			start = bestBreak
		}
	}

	return chunks
}

// ChunkDocument produces the chunks the merge engine consumes: raw chunks
// coalesced up to the size bound, fragments under minChunkSize dropped, and
// the sampling policy applied last.
func (c *SmartChunker) ChunkDocument(content string, minChunkSize int) []string {
	if minChunkSize <= 0 {
		minChunkSize = 100
	}
	chunks := c.ChunkText(content)

	var merged []string
	current := ""
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if len(current)+len(chunk) <= c.maxChunkSize {
			if current == "" {
				current = chunk
			} else {
				current += " " + chunk
			}
		} else {
			if len(current) >= minChunkSize {
				merged = append(merged, current)
			}
			current = chunk
		}
	}
	if current != "" && len(current) >= minChunkSize {
		merged = append(merged, current)
	}

	return c.sampler.Sample(merged)
}
