package history

import (
	"context"
	"time"

	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/store"
)

// Loader reads and records the per-session turns of one memory scope.
type Loader struct {
	repo contract.ConversationRepository
}

func NewLoader(repo contract.ConversationRepository) *Loader {
	return &Loader{repo: repo}
}

// LoadConversationHistory returns the scope's turns as chat messages, oldest first.
func (l *Loader) LoadConversationHistory(ctx context.Context, sessionId string, scope string) ([]llm.Message, error) {
	turns, err := l.repo.History(ctx, sessionId, scope)
	if err != nil {
		return nil, err
	}

	messages := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		role := llm.RoleUser
		if t.Role == store.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: t.Content})
	}
	return messages, nil
}

// Record appends one exchange to the scope.
func (l *Loader) Record(ctx context.Context, sessionId string, scope string, userContent string, assistantContent string) error {
	now := time.Now()
	return l.repo.Append(ctx, sessionId, scope,
		store.Turn{Role: store.RoleUser, Content: userContent, CreatedAt: now},
		store.Turn{Role: store.RoleAssistant, Content: assistantContent, CreatedAt: now},
	)
}
