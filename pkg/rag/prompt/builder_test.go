package prompt

import (
	"strings"
	"testing"

	"rag-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestBuildContext(t *testing.T) {
	chunks := []*store.ScoredChunk{
		{Chunk: &store.Chunk{Content: "first"}, Score: 0.9},
		nil,
		{Chunk: &store.Chunk{Content: "second"}, Score: 0.5},
	}
	assert.Equal(t, "first\n\n---\n\nsecond", BuildContext(chunks))
	assert.Equal(t, "", BuildContext(nil))
}

func TestTruncateContext(t *testing.T) {
	ctx := "aaaa\n\n---\n\nbbbb"
	assert.Equal(t, ctx, TruncateContext(ctx, 0))
	assert.Equal(t, ctx, TruncateContext(ctx, 100))
	assert.Equal(t, "aaaa", TruncateContext(ctx, 12))
	assert.Equal(t, "aa", TruncateContext(ctx, 2))
}

func TestBuildPrompts(t *testing.T) {
	rewrite := BuildRewritePrompt("X is a fruit.", "What is X?")
	assert.True(t, strings.HasPrefix(rewrite, "You are a query-enhancer."))
	assert.Contains(t, rewrite, "Context:\nX is a fruit.\n\nQuestion: What is X?")

	answer := BuildAnswerPrompt("X is a fruit.", "definition of X")
	assert.Contains(t, answer, "Based *only* on the context")
	assert.Contains(t, answer, "The provided text does not contain the answer.")
	assert.True(t, strings.HasSuffix(answer, "Question: definition of X"))
}
