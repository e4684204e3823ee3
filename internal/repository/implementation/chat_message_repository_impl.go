package implementation

import (
	"context"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/mapper"
	"rag-chat-be/internal/model"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/scope"
	"rag-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMessageMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMessageMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	models := make([]*model.ChatMessage, len(messages))
	for i, m := range messages {
		models[i] = r.mapper.ToModel(m)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*messages[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ChatMessageRepositoryImpl) FindBySession(ctx context.Context, sessionId string, chatScope string, page contract.Page) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	query := specification.BySessionID{SessionID: sessionId}.Apply(r.db.WithContext(ctx))
	query = specification.ByScope{Scope: chatScope}.Apply(query)
	query = specification.Pagination{Page: page}.Apply(query)
	if err := query.Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
