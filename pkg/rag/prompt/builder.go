package prompt

import (
	"fmt"
	"strings"

	"rag-chat-be/internal/constant"
	"rag-chat-be/pkg/store"
)

// BuildContext joins retrieved chunk text in rank order.
func BuildContext(chunks []*store.ScoredChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c == nil || c.Chunk == nil {
			continue
		}
		parts = append(parts, c.Chunk.Content)
	}
	return strings.Join(parts, constant.ContextSeparator)
}

// TruncateContext caps the context at maxRunes, cutting on a separator when one
// is available. Zero disables the cap.
func TruncateContext(context string, maxRunes int) string {
	runes := []rune(context)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return context
	}
	cut := string(runes[:maxRunes])
	if i := strings.LastIndex(cut, constant.ContextSeparator); i > 0 {
		return cut[:i]
	}
	return cut
}

func BuildRewritePrompt(context, question string) string {
	return fmt.Sprintf(constant.QueryRewriterUserPromptV1, context, question)
}

func BuildAnswerPrompt(context, refinedQuery string) string {
	return fmt.Sprintf(constant.AnswerUserPromptV1, context, refinedQuery)
}
