package response

import (
	"context"
	"strings"

	"rag-chat-be/internal/constant"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/rag"
	"rag-chat-be/pkg/rag/prompt"
)

// Generator produces the final answer from the rewritten query and the
// retrieved context. Grounding is enforced by instruction only.
type Generator struct {
	llmProvider llm.LLMProvider
	options     []llm.Option
}

func NewGenerator(llmProvider llm.LLMProvider, options ...llm.Option) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		options:     options,
	}
}

// GenerateFromContext returns the model output verbatim, apart from trimming.
func (g *Generator) GenerateFromContext(ctx context.Context, refinedQuery string, contextText string, history []llm.Message) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: constant.AnswerSystemPromptV1})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt.BuildAnswerPrompt(contextText, refinedQuery)})

	answer, err := g.llmProvider.Chat(ctx, messages, g.options...)
	if err != nil {
		return "", &rag.ModelError{Stage: "answer", Err: err}
	}
	return strings.TrimSpace(answer), nil
}
