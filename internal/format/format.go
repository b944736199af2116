// Package format renders the final summary for its destination.
package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

const (
	StyleNarrative = "narrative"
	StyleBullets   = "bullets"
)

// Render applies the configured output style. Narrative output is passed
// through untouched; bullet output prefixes every non-empty line that is not
// already a bullet.
func Render(summary, style string) string {
	if style != StyleBullets {
		return summary
	}

	lines := strings.Split(summary, "\n")
	bullets := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "- ") {
			line = "- " + line
		}
		bullets = append(bullets, line)
	}
	return strings.Join(bullets, "\n")
}

// RenderHTML converts a markdown summary to a standalone HTML fragment.
func RenderHTML(summary string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(summary), &buf); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}
