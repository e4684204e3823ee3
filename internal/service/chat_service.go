package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/pkg/events"
	"rag-chat-be/pkg/ingest"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/observability"
	"rag-chat-be/pkg/rag"
	"rag-chat-be/pkg/rag/history"
	"rag-chat-be/pkg/rag/knowledge"
	"rag-chat-be/pkg/rag/prompt"
	"rag-chat-be/pkg/rag/response"
	"rag-chat-be/pkg/rag/rewrite"
	"rag-chat-be/pkg/rag/session"
	"rag-chat-be/pkg/store"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultTopK = 4

// IChatService routes a session's messages to the greeting, video ingest or
// retrieval-and-answer path.
type IChatService interface {
	Generate(ctx context.Context, request *dto.GenerateRequest) (string, error)
	CreateSession(ctx context.Context) *dto.CreateSessionResponse
}

type ChatServiceConfig struct {
	TopK            int
	MaxContextRunes int
}

type chatService struct {
	cfg              ChatServiceConfig
	ingestService    IIngestService
	knowledgeStore   *knowledge.Store
	rewriter         *rewrite.Rewriter
	generator        *response.Generator
	historyLoader    *history.Loader
	publisherService IPublisherService
	eventPublisher   events.Publisher
	metrics          *observability.Metrics
	logger           logger.ILogger
}

func NewChatService(
	cfg ChatServiceConfig,
	ingestService IIngestService,
	knowledgeStore *knowledge.Store,
	rewriter *rewrite.Rewriter,
	generator *response.Generator,
	historyLoader *history.Loader,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	metrics *observability.Metrics,
	log logger.ILogger,
) IChatService {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if eventPublisher == nil {
		eventPublisher = events.NopPublisher{}
	}
	return &chatService{
		cfg:              cfg,
		ingestService:    ingestService,
		knowledgeStore:   knowledgeStore,
		rewriter:         rewriter,
		generator:        generator,
		historyLoader:    historyLoader,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		metrics:          metrics,
		logger:           log,
	}
}

func (c *chatService) CreateSession(ctx context.Context) *dto.CreateSessionResponse {
	return &dto.CreateSessionResponse{ThreadId: session.NewID()}
}

func (c *chatService) Generate(ctx context.Context, request *dto.GenerateRequest) (string, error) {
	query := strings.TrimSpace(request.Query)
	sessionId := session.Normalize(request.ThreadId)
	if query == "" || sessionId == "" {
		return "", dto.NewServiceError(http.StatusBadRequest, constant.ErrQueryRequired, nil)
	}

	ctx, span := otel.Tracer("rag-chat-be/chat").Start(ctx, "chat.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", sessionId))

	// 1. Greeting
	if response.IsGreeting(query) {
		span.SetAttributes(attribute.String("chat.route", "greeting"))
		return constant.GreetingReply, nil
	}

	// 2. Video link: always ingested, never answered
	if ingest.IsVideoURL(query) {
		span.SetAttributes(attribute.String("chat.route", "video"))
		return c.ingestVideo(ctx, sessionId, query)
	}

	span.SetAttributes(attribute.String("chat.route", "answer"))
	return c.answer(ctx, sessionId, query)
}

func (c *chatService) ingestVideo(ctx context.Context, sessionId string, url string) (string, error) {
	result, err := c.ingestService.IngestVideo(ctx, sessionId, url)
	if err != nil {
		var noTranscript *rag.NoTranscriptError
		if errors.As(err, &noTranscript) {
			return constant.NoTranscriptReply, nil
		}
		return "", dto.NewServiceError(http.StatusInternalServerError, constant.ErrProcessingVideoLink, err)
	}
	return response.VideoIngested(result.Title), nil
}

func (c *chatService) answer(ctx context.Context, sessionId string, query string) (string, error) {
	start := time.Now()

	// 3. Retrieval
	hits, err := c.knowledgeStore.Query(ctx, query, c.cfg.TopK, store.Filter{SessionID: sessionId})
	if err != nil {
		c.countExternal("knowledge_store")
		return "", c.internalError("Retrieval failed", sessionId, err)
	}
	c.observe("retrieve", start)
	if c.metrics != nil {
		c.metrics.CountRetrieval(len(hits))
	}
	if len(hits) == 0 {
		return constant.NoDocumentsReply, nil
	}

	contextText := prompt.TruncateContext(prompt.BuildContext(hits), c.cfg.MaxContextRunes)

	// 4. Rewrite
	stageStart := time.Now()
	rewriterHistory := c.loadHistory(ctx, sessionId, store.ScopeRewriter)
	refined, err := c.rewriter.Rewrite(ctx, query, contextText, rewriterHistory)
	if err != nil {
		c.countExternal("llm")
		return "", c.internalError("Query rewrite failed", sessionId, err)
	}
	c.observe("rewrite", stageStart)
	c.recordHistory(ctx, sessionId, store.ScopeRewriter, query, refined)

	// 5. Answer
	stageStart = time.Now()
	answerHistory := c.loadHistory(ctx, sessionId, store.ScopeAnswer)
	answer, err := c.generator.GenerateFromContext(ctx, refined, contextText, answerHistory)
	if err != nil {
		c.countExternal("llm")
		return "", c.internalError("Answer generation failed", sessionId, err)
	}
	c.observe("answer", stageStart)
	c.recordHistory(ctx, sessionId, store.ScopeAnswer, refined, answer)

	c.archive(ctx, sessionId, query, refined, answer)
	if err := c.eventPublisher.Publish(ctx, events.NewAnswerGenerated(sessionId, len(hits), time.Since(start))); err != nil {
		c.logger.Warn("ChatService", "Failed to publish answer event", map[string]interface{}{"error": err.Error()})
	}

	c.logger.Info("ChatService", "Answer generated", map[string]interface{}{
		"session_id": sessionId,
		"chunks":     len(hits),
		"latency_ms": time.Since(start).Milliseconds(),
	})
	return answer, nil
}

func (c *chatService) loadHistory(ctx context.Context, sessionId string, scope string) []llm.Message {
	msgs, err := c.historyLoader.LoadConversationHistory(ctx, sessionId, scope)
	if err != nil {
		c.logger.Warn("ChatService", "Failed to load conversation history", map[string]interface{}{
			"session_id": sessionId,
			"scope":      scope,
			"error":      err.Error(),
		})
		return nil
	}
	return msgs
}

func (c *chatService) recordHistory(ctx context.Context, sessionId string, scope string, userContent string, assistantContent string) {
	if err := c.historyLoader.Record(ctx, sessionId, scope, userContent, assistantContent); err != nil {
		c.logger.Warn("ChatService", "Failed to record conversation history", map[string]interface{}{
			"session_id": sessionId,
			"scope":      scope,
			"error":      err.Error(),
		})
	}
}

func (c *chatService) archive(ctx context.Context, sessionId, query, refined, answer string) {
	if c.publisherService == nil {
		return
	}
	now := time.Now()
	payload, err := json.Marshal(dto.ArchiveTurnsMessage{
		SessionId: sessionId,
		Turns: []dto.ArchivedTurn{
			{Scope: store.ScopeRewriter, Role: store.RoleUser, Content: query, CreatedAt: now},
			{Scope: store.ScopeRewriter, Role: store.RoleAssistant, Content: refined, CreatedAt: now},
			{Scope: store.ScopeAnswer, Role: store.RoleUser, Content: refined, CreatedAt: now},
			{Scope: store.ScopeAnswer, Role: store.RoleAssistant, Content: answer, CreatedAt: now},
		},
	})
	if err != nil {
		return
	}
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.logger.Warn("ChatService", "Failed to publish archive message", map[string]interface{}{"error": err.Error()})
	}
}

func (c *chatService) internalError(msg string, sessionId string, err error) error {
	c.logger.Error("ChatService", msg, map[string]interface{}{
		"session_id": sessionId,
		"error":      err.Error(),
	})
	return dto.NewServiceError(http.StatusInternalServerError, constant.ErrProcessingRequest, err)
}

func (c *chatService) observe(stage string, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveStage(stage, time.Since(start))
	}
}

func (c *chatService) countExternal(dependency string) {
	if c.metrics != nil {
		c.metrics.CountExternalError(dependency)
	}
}
