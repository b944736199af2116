package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAI_EndpointNormalization(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"", "https://api.openai.com/v1/chat/completions"},
		{"https://llm.internal/v1", "https://llm.internal/v1/chat/completions"},
		{"https://llm.internal", "https://llm.internal/v1/chat/completions"},
		{"https://llm.internal/v1/chat/completions", "https://llm.internal/v1/chat/completions"},
	}
	for _, tc := range cases {
		s := NewOpenAI(Options{BaseURL: tc.base})
		assert.Equal(t, tc.want, s.endpoint, "base url %q", tc.base)
	}
}

func TestOpenAI_Summarize(t *testing.T) {
	var gotReq openAIChatRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` + "```" + `\nsummary body\n` + "```" + `"}}]}`))
	}))
	defer srv.Close()

	s := NewOpenAI(Options{BaseURL: srv.URL + "/v1", APIKey: "k", Model: "gpt-4o-mini"})
	out, err := s.Summarize(context.Background(), "left\n\nright", false)
	require.NoError(t, err)

	// code fences are stripped from model output
	assert.Equal(t, "summary body", out)
	assert.Equal(t, "Bearer k", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "left\n\nright")
}

func TestOpenAI_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[],"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	s := NewOpenAI(Options{BaseURL: srv.URL + "/v1", Model: "m"})
	_, err := s.Summarize(context.Background(), "text", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestOpenAI_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	s := NewOpenAI(Options{BaseURL: srv.URL + "/v1", Model: "m"})
	_, err := s.Summarize(context.Background(), "text", false)
	assert.Error(t, err)
}
