package loader

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText interprets raw bytes as UTF-8, falling back to Windows-1251
// for the legacy Cyrillic corpora the pipeline was first built for.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		// keep what we can; invalid sequences become replacement runes
		return string(data)
	}
	return string(decoded)
}
