package rewrite

import (
	"context"
	"strings"

	"rag-chat-be/internal/constant"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/rag"
	"rag-chat-be/pkg/rag/prompt"
)

// Rewriter turns a raw question plus retrieved context into a retrieval-oriented
// query followed by keywords. The output is passed on as one opaque string.
type Rewriter struct {
	llmProvider llm.LLMProvider
	options     []llm.Option
}

func NewRewriter(llmProvider llm.LLMProvider, options ...llm.Option) *Rewriter {
	return &Rewriter{llmProvider: llmProvider, options: options}
}

// Rewrite falls back to the raw question when the model answers with blank text.
func (r *Rewriter) Rewrite(ctx context.Context, question string, contextText string, history []llm.Message) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: constant.QueryRewriterSystemPromptV1})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt.BuildRewritePrompt(contextText, question)})

	out, err := r.llmProvider.Chat(ctx, messages, r.options...)
	if err != nil {
		return "", &rag.ModelError{Stage: "rewrite", Err: err}
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return question, nil
	}
	return out, nil
}
