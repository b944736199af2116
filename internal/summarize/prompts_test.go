package summarize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptBuilder_Defaults(t *testing.T) {
	pb := NewPromptBuilder("", "", "")

	pair := pb.Build("some text", false)
	assert.Contains(t, pair, defaultSystemPrompt)
	assert.Contains(t, pair, defaultMergePrompt)
	assert.Contains(t, pair, "some text")
	assert.NotContains(t, pair, defaultFinalPrompt)

	final := pb.Build("some text", true)
	assert.Contains(t, final, defaultFinalPrompt)
	assert.NotContains(t, final, defaultMergePrompt)
}

func TestPromptBuilder_Overrides(t *testing.T) {
	pb := NewPromptBuilder("SYS", "MERGE", "FINAL")

	assert.Contains(t, pb.Build("x", false), "SYS")
	assert.Contains(t, pb.Build("x", false), "MERGE")
	assert.Contains(t, pb.Build("x", true), "FINAL")

	user := pb.UserPrompt("x", false)
	assert.NotContains(t, user, "SYS")
	assert.Contains(t, user, "MERGE")
}

func TestCleanModelOutput(t *testing.T) {
	assert.Equal(t, "plain", cleanModelOutput("  plain  "))
	assert.Equal(t, "body", cleanModelOutput("```\nbody\n```"))
	assert.Equal(t, "body", cleanModelOutput("```markdown\nbody\n```"))
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	_, err := NewSummarizer(context.Background(), Options{Provider: "anthropic"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported summarizer provider")
}

func TestNewSummarizer_OpenAI(t *testing.T) {
	s, err := NewSummarizer(context.Background(), Options{Provider: "OpenAI", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, s)
}
