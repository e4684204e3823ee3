package contract

import (
	"context"

	"rag-chat-be/internal/entity"
)

type ChatMessageRepository interface {
	CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error
	// FindBySession returns archived turns oldest first. An empty scope returns all scopes.
	FindBySession(ctx context.Context, sessionId string, scope string, page Page) ([]*entity.ChatMessage, error)
}
