package mapper

import (
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/model"
)

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        c.Id,
		SessionId: c.SessionId,
		Scope:     c.Scope,
		Role:      c.Role,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        c.Id,
		SessionId: c.SessionId,
		Scope:     c.Scope,
		Role:      c.Role,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, c := range msgs {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
