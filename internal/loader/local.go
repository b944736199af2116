package loader

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/ledongthuc/pdf"
)

// LocalSource walks a directory tree and loads every file that passes the
// extension allow-list. PDF and HTML files are reduced to plain text,
// everything else is read as-is.
type LocalSource struct {
	root    string
	exts    []string
	ignored []string
}

func NewLocalSource(root string, allowedExtensions []string) *LocalSource {
	return &LocalSource{
		root:    root,
		exts:    allowedExtensions,
		ignored: []string{".git", "vendor", "node_modules", "testdata"},
	}
}

func (s *LocalSource) Load(ctx context.Context) ([]Document, error) {
	var docs []Document
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			for _, ign := range s.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !hasAllowedExtension(d.Name(), s.exts) {
			return nil
		}

		content, err := readFileText(path)
		if err != nil {
			// Log and continue instead of failing the whole walk
			log.Printf("warning: failed to read %s: %v", path, err)
			return nil
		}
		content = strings.TrimSpace(content)
		if content == "" {
			return nil
		}

		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			rel = path
		}
		docs = append(docs, Document{Name: rel, Content: content})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func readFileText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".html", ".htm":
		return extractHTML(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return decodeText(data), nil
	}
}

func extractPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var text strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(pageText)
	}
	return text.String(), nil
}

func extractHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pageURL := &url.URL{Scheme: "file", Path: path}
	article, err := readability.FromReader(f, pageURL)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	return article.TextContent, nil
}
