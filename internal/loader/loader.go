// Package loader yields (name, content) documents from MinIO buckets or the
// local filesystem. Sources never fail the run over a single bad document:
// unreadable or empty files are skipped with a warning.
package loader

import (
	"context"
	"math/rand"
	"sort"
	"strings"
)

// Document is one raw input text with its origin identifier.
type Document struct {
	Name    string
	Content string
}

// Source yields zero or more documents. An empty result is legitimate, not
// an error.
type Source interface {
	Load(ctx context.Context) ([]Document, error)
}

// hasAllowedExtension reports whether name ends in one of exts
// (case-insensitive). An empty list allows everything.
func hasAllowedExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(strings.TrimSpace(ext))) {
			return true
		}
	}
	return false
}

// sampleNames keeps roughly fraction of the sorted file listing. Fractions
// outside (0, 1) disable sampling; a non-empty listing always keeps at least
// one file. With randomize the pick is a uniform sample (seeded when seed is
// set), otherwise the first N of the sorted listing.
func sampleNames(files []string, fraction float64, randomize bool, seed *int64) []string {
	if len(files) == 0 || fraction <= 0 || fraction >= 1 {
		return files
	}

	count := int(float64(len(files)) * fraction)
	if count < 1 {
		count = 1
	}
	if count >= len(files) {
		return files
	}

	if !randomize {
		return files[:count]
	}

	var rnd *rand.Rand
	if seed != nil {
		rnd = rand.New(rand.NewSource(*seed))
	} else {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	picked := rnd.Perm(len(files))[:count]
	sort.Ints(picked)

	out := make([]string, 0, count)
	for _, idx := range picked {
		out = append(out, files[idx])
	}
	return out
}
