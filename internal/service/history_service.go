package service

import (
	"context"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/rag"
	"rag-chat-be/pkg/rag/session"
)

// IHistoryService reads the durable turn archive written by the consumer.
// Turns show up once the archive message has been consumed.
type IHistoryService interface {
	ListHistory(ctx context.Context, request *dto.ListHistoryRequest) ([]*dto.HistoryMessageResponse, error)
}

type historyService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IHistoryService {
	return &historyService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *historyService) ListHistory(ctx context.Context, request *dto.ListHistoryRequest) ([]*dto.HistoryMessageResponse, error) {
	sessionId := session.Normalize(request.ThreadId)
	page := contract.Page{Limit: request.Limit, Offset: request.Offset}

	msgs, err := s.uowFactory.NewUnitOfWork(ctx).ChatMessageRepository().FindBySession(ctx, sessionId, request.Scope, page)
	if err != nil {
		s.logger.Error("HistoryService", "Failed to read archived turns", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, &rag.StoreUnavailableError{Op: "list history", Err: err}
	}

	res := make([]*dto.HistoryMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, &dto.HistoryMessageResponse{
			Id:        m.Id,
			Scope:     m.Scope,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}
