package memory

import (
	"context"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/contract"
)

type ChatMessageRepository struct {
	uow *UnitOfWork
}

var _ contract.ChatMessageRepository = &ChatMessageRepository{}

func (r *ChatMessageRepository) CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error {
	stored := make([]*entity.ChatMessage, len(messages))
	for i, m := range messages {
		stamp(&m.Id, &m.CreatedAt)
		cp := *m
		stored[i] = &cp
	}
	r.uow.stage(func(p *pending) {
		p.messages = append(p.messages, stored...)
	})
	return nil
}

// FindBySession returns messages in insertion order.
func (r *ChatMessageRepository) FindBySession(ctx context.Context, sessionId string, scope string, page contract.Page) ([]*entity.ChatMessage, error) {
	db := r.uow.db
	db.mu.RLock()
	defer db.mu.RUnlock()

	msgs := make([]*entity.ChatMessage, 0)
	for _, m := range db.messages {
		if m.SessionId != sessionId {
			continue
		}
		if scope != "" && m.Scope != scope {
			continue
		}
		cp := *m
		msgs = append(msgs, &cp)
	}
	start, end := page.Window(len(msgs))
	return msgs[start:end], nil
}
