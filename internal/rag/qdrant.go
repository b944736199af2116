package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// QdrantStore is a minimal REST client for similarity search against an
// existing qdrant collection.
type QdrantStore struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

func NewQdrantStore(url, apiKey, collection string) *QdrantStore {
	return &QdrantStore{
		url:        strings.TrimRight(url, "/"),
		apiKey:     apiKey,
		collection: collection,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

// CheckCollection verifies the server is reachable and the collection
// exists, returning the known collection names on a miss.
func (s *QdrantStore) CheckCollection(ctx context.Context) ([]string, error) {
	var resp struct {
		Result struct {
			Collections []struct {
				Name string `json:"name"`
			} `json:"collections"`
		} `json:"result"`
	}
	if err := s.getJSON(ctx, s.url+"/collections", &resp); err != nil {
		return nil, fmt.Errorf("qdrant connection check failed: %w", err)
	}

	names := make([]string, 0, len(resp.Result.Collections))
	for _, c := range resp.Result.Collections {
		names = append(names, c.Name)
	}
	for _, name := range names {
		if name == s.collection {
			return names, nil
		}
	}
	return names, fmt.Errorf("collection %q not found (available: %s)", s.collection, strings.Join(names, ", "))
}

func (s *QdrantStore) Search(ctx context.Context, vector []float32, topK int, scoreThreshold float64) ([]SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}
	req := map[string]any{
		"vector":          vector,
		"limit":           topK,
		"with_payload":    true,
		"score_threshold": scoreThreshold,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	endpoint := fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection)
	if err := s.postJSON(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		res := SearchResult{Score: r.Score}
		if v, ok := r.Payload["text"].(string); ok {
			res.Text = v
		}
		if v, ok := r.Payload["source"].(string); ok {
			res.Source = v
		} else if v, ok := r.Payload["document_id"].(string); ok {
			res.Source = v
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *QdrantStore) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return s.do(req, out)
}

func (s *QdrantStore) postJSON(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, out)
}

func (s *QdrantStore) do(req *http.Request, out any) error {
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
