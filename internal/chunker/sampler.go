package chunker

// Sampler is the post-coalescing selection policy applied by ChunkDocument.
type Sampler interface {
	Sample(chunks []string) []string
}

// HeadMiddleTailSampler caps a document's contribution at three chunks: the
// first, the middle, and the second-to-last. Anything else is discarded.
// This trades most of a long document's content for a bounded merge pool;
// swap in KeepAllSampler if that loss is unacceptable.
type HeadMiddleTailSampler struct{}

func (HeadMiddleTailSampler) Sample(chunks []string) []string {
	if len(chunks) <= 3 {
		return chunks
	}
	return []string{
		chunks[0],
		chunks[len(chunks)/2],
		chunks[len(chunks)-2],
	}
}

// KeepAllSampler passes every coalesced chunk through unchanged.
type KeepAllSampler struct{}

func (KeepAllSampler) Sample(chunks []string) []string { return chunks }
