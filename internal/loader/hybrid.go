package loader

import (
	"context"
	"log"
)

// HybridSource tries a primary source (typically MinIO) and falls back to a
// secondary one when the primary errors or yields nothing.
type HybridSource struct {
	primary  Source
	fallback Source
}

func NewHybridSource(primary, fallback Source) *HybridSource {
	return &HybridSource{primary: primary, fallback: fallback}
}

func (s *HybridSource) Load(ctx context.Context) ([]Document, error) {
	if s.primary != nil {
		docs, err := s.primary.Load(ctx)
		if err == nil && len(docs) > 0 {
			return docs, nil
		}
		if err != nil {
			log.Printf("warning: primary source failed, falling back: %v", err)
		}
	}
	if s.fallback == nil {
		return nil, nil
	}
	return s.fallback.Load(ctx)
}
