package embedding

import (
	"context"

	"rag-chat-be/pkg/retry"
)

// RetryingProvider wraps an EmbeddingProvider with bounded exponential backoff.
type RetryingProvider struct {
	next   EmbeddingProvider
	policy retry.Policy
}

func NewRetryingProvider(next EmbeddingProvider, policy retry.Policy) EmbeddingProvider {
	return &RetryingProvider{next: next, policy: policy}
}

func (p *RetryingProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	return retry.Do(ctx, p.policy, func() (*EmbeddingResponse, error) {
		return p.next.Generate(ctx, text, taskType)
	})
}

