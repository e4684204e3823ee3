package service

import (
	"context"
	"encoding/json"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/observability"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService archives answered turns to chat_messages.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	metrics    *observability.Metrics
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	metrics *observability.Metrics,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		metrics:    metrics,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ArchiveTurnsMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	if payload.SessionId == "" || len(payload.Turns) == 0 {
		msg.Ack()
		return
	}

	messages := make([]*entity.ChatMessage, 0, len(payload.Turns))
	for _, t := range payload.Turns {
		messages = append(messages, &entity.ChatMessage{
			Id:        uuid.New(),
			SessionId: payload.SessionId,
			Scope:     t.Scope,
			Role:      t.Role,
			Content:   t.Content,
			CreatedAt: t.CreatedAt,
		})
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().CreateBulk(ctx, messages); err != nil {
		cs.logger.Error("ConsumerService", "Failed to archive chat turns", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		// best effort: gochannel redelivers a nacked message immediately
		msg.Ack()
		return
	}

	if cs.metrics != nil {
		cs.metrics.ArchivedMessage.Add(float64(len(messages)))
	}
	cs.logger.Debug("ConsumerService", "Archived chat turns", map[string]interface{}{
		"session_id": payload.SessionId,
		"count":      len(messages),
	})
	msg.Ack()
}
