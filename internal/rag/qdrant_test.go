package rag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQdrantCheckCollection(t *testing.T) {
	var gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("api-key")
		assert.Equal(t, "/collections", r.URL.Path)
		_, _ = w.Write([]byte(`{"result":{"collections":[{"name":"docs"},{"name":"other"}]}}`))
	}))
	defer server.Close()

	store := NewQdrantStore(server.URL, "secret", "docs")
	names, err := store.CheckCollection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"docs", "other"}, names)
	assert.Equal(t, "secret", gotAPIKey)
}

func TestQdrantCheckCollectionMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"collections":[{"name":"other"}]}}`))
	}))
	defer server.Close()

	store := NewQdrantStore(server.URL, "", "docs")
	names, err := store.CheckCollection(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `collection "docs" not found`)
	assert.Equal(t, []string{"other"}, names)
}

func TestQdrantSearch(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/docs/points/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"result":[
			{"score":0.91,"payload":{"text":"chunk one","source":"a.txt"}},
			{"score":0.72,"payload":{"text":"chunk two","document_id":"b.txt"}}
		]}`))
	}))
	defer server.Close()

	store := NewQdrantStore(server.URL, "", "docs")
	results, err := store.Search(context.Background(), []float32{0.1, 0.2}, 2, 0.6)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "chunk one", results[0].Text)
	assert.Equal(t, "a.txt", results[0].Source)
	assert.InDelta(t, 0.91, results[0].Score, 1e-9)
	// document_id is accepted as a fallback payload key for the source
	assert.Equal(t, "b.txt", results[1].Source)

	assert.EqualValues(t, 2, gotBody["limit"])
	assert.EqualValues(t, 0.6, gotBody["score_threshold"])
	assert.Equal(t, true, gotBody["with_payload"])
}

func TestQdrantSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "collection not found", http.StatusNotFound)
	}))
	defer server.Close()

	store := NewQdrantStore(server.URL, "", "docs")
	_, err := store.Search(context.Background(), []float32{0.1}, 3, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
