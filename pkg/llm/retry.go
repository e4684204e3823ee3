package llm

import (
	"context"

	"rag-chat-be/pkg/retry"
)

// RetryingProvider wraps an LLMProvider with bounded exponential backoff.
type RetryingProvider struct {
	next   LLMProvider
	policy retry.Policy
}

var _ LLMProvider = &RetryingProvider{}

func NewRetryingProvider(next LLMProvider, policy retry.Policy) *RetryingProvider {
	return &RetryingProvider{next: next, policy: policy}
}

func (p *RetryingProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return retry.Do(ctx, p.policy, func() (string, error) {
		return p.next.Chat(ctx, history, options...)
	})
}

func (p *RetryingProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return p.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, options...)
}
