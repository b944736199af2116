package summarize

import (
	"fmt"
	"strings"
)

const (
	defaultSystemPrompt = "You are a careful technical summarizer. Preserve concrete facts, names and numbers. Never invent content that is not present in the input."

	defaultMergePrompt = "Combine the fragments below into one coherent summary. Keep every distinct topic; collapse repetition."

	defaultFinalPrompt = "Produce the final summary document from the intermediate summaries below. Write it as a self-contained text a reader can understand without the sources."
)

// PromptBuilder assembles the generation prompt for pair merges and for the
// terminal call.
type PromptBuilder struct {
	System string
	Merge  string
	Final  string
}

func NewPromptBuilder(system, merge, final string) *PromptBuilder {
	pb := &PromptBuilder{System: system, Merge: merge, Final: final}
	if pb.System == "" {
		pb.System = defaultSystemPrompt
	}
	if pb.Merge == "" {
		pb.Merge = defaultMergePrompt
	}
	if pb.Final == "" {
		pb.Final = defaultFinalPrompt
	}
	return pb
}

func (pb *PromptBuilder) Build(text string, final bool) string {
	var sb strings.Builder
	sb.WriteString(pb.System)
	sb.WriteString("\n\n")
	if final {
		sb.WriteString(pb.Final)
		sb.WriteString("\n\nIntermediate summaries:\n")
		sb.WriteString(text)
		sb.WriteString("\n\nFinal summary document:")
	} else {
		sb.WriteString(pb.Merge)
		sb.WriteString("\n\nFragments to combine:\n")
		sb.WriteString(text)
		sb.WriteString("\n\nCombined summary document:")
	}
	return sb.String()
}

// UserPrompt is the non-system part of the prompt, for chat-style backends
// that carry the system instruction separately.
func (pb *PromptBuilder) UserPrompt(text string, final bool) string {
	if final {
		return fmt.Sprintf("%s\n\nIntermediate summaries:\n%s\n\nFinal summary document:", pb.Final, text)
	}
	return fmt.Sprintf("%s\n\nFragments to combine:\n%s\n\nCombined summary document:", pb.Merge, text)
}
