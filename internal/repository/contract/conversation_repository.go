package contract

import (
	"context"

	"rag-chat-be/pkg/store"
)

// ConversationRepository is the short-lived, per-session turn memory fed to the
// rewriter and the answer generator. Implementations trim to a fixed number of
// turns and expire idle sessions.
type ConversationRepository interface {
	Append(ctx context.Context, sessionId string, scope string, turns ...store.Turn) error
	History(ctx context.Context, sessionId string, scope string) ([]store.Turn, error)
	Clear(ctx context.Context, sessionId string) error
}
