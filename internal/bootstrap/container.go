package bootstrap

import (
	"context"
	"fmt"
	"time"

	"rag-chat-be/internal/config"
	"rag-chat-be/internal/controller"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/memory"
	"rag-chat-be/internal/repository/redisstore"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/internal/service"
	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/embedding/jina"
	"rag-chat-be/pkg/events"
	"rag-chat-be/pkg/ingest"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/llm/factory"
	"rag-chat-be/pkg/observability"
	"rag-chat-be/pkg/rag/chunk"
	"rag-chat-be/pkg/rag/history"
	"rag-chat-be/pkg/rag/knowledge"
	"rag-chat-be/pkg/rag/response"
	"rag-chat-be/pkg/rag/rewrite"
	"rag-chat-be/pkg/retry"

	pktNats "rag-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger  logger.ILogger
	Metrics *observability.Metrics

	closers []func()
}

// NewContainer wires the application. A nil db selects the in-memory store.
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	metrics := observability.NewMetrics("rag_chat")
	c := &Container{Logger: sysLogger, Metrics: metrics}

	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		uowFactory = memory.NewRepositoryFactory(memory.NewDatabase())
		sysLogger.Warn("Bootstrap", "Using in-memory knowledge store", nil)
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var eventPublisher events.Publisher = events.NopPublisher{}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. External providers
	policy := retry.DefaultPolicy()
	policy.Attempts = uint(max(cfg.Rag.RetryAttempts, 1))
	policy.OnRetry = func(err error, wait time.Duration) {
		sysLogger.Warn("Retry", "Retrying external call", map[string]interface{}{
			"error":   err.Error(),
			"wait_ms": wait.Milliseconds(),
		})
	}

	embeddingProvider, err := newEmbeddingProvider(cfg)
	if err != nil {
		return nil, err
	}
	embeddingProvider = embedding.NewRetryingProvider(embeddingProvider, policy)
	sysLogger.Info("Bootstrap", "Embedding provider ready", map[string]interface{}{"provider": cfg.Ai.EmbeddingProvider})

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
		llmAPIKey(cfg),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	retryingLLM := llm.NewRetryingProvider(llmProvider, policy)
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 4. Conversation memory
	conversationRepo, closeConversations, err := newConversationRepository(cfg, sysLogger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, closeConversations)

	// 5. Services
	knowledgeStore := knowledge.NewStore(embeddingProvider, uowFactory)
	ingestService := service.NewIngestService(
		ingest.NewIngestor(ingest.NewTranscriptFetcher(cfg.Rag.TranscriptLanguage)),
		chunk.NewChunker(cfg.Rag.ChunkSize, cfg.Rag.ChunkOverlap),
		knowledgeStore,
		eventPublisher,
		metrics,
		sysLogger,
	)

	temperature := llm.WithTemperature(cfg.Ai.Temperature)
	chatService := service.NewChatService(
		service.ChatServiceConfig{TopK: cfg.Rag.TopK, MaxContextRunes: cfg.Rag.MaxContextRunes},
		ingestService,
		knowledgeStore,
		rewrite.NewRewriter(retryingLLM, temperature),
		response.NewGenerator(retryingLLM, temperature),
		history.NewLoader(conversationRepo),
		service.NewPublisherService(cfg.App.ArchiveTopic, pubSub),
		eventPublisher,
		metrics,
		sysLogger,
	)

	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.ArchiveTopic, uowFactory, metrics, sysLogger)

	// 6. Controllers
	c.ChatController = controller.NewChatController(chatService, ingestService, service.NewHistoryService(uowFactory, sysLogger), metrics)
	return c, nil
}

// Close releases connections opened by NewContainer.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func newEmbeddingProvider(cfg *config.Config) (embedding.EmbeddingProvider, error) {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel), nil
	case "jina":
		if cfg.Keys.Jina == "" {
			return nil, fmt.Errorf("JINA_API_KEY is required for the jina embedding provider")
		}
		return jina.NewJinaProvider(cfg.Keys.Jina), nil
	case "openai":
		if cfg.Keys.OpenAI == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai embedding provider")
		}
		return embedding.NewOpenAIProvider(cfg.Keys.OpenAI, "", cfg.Ai.EmbeddingModel, cfg.Ai.EmbeddingDimension), nil
	case "gemini", "":
		if cfg.Keys.GoogleGemini == "" {
			return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY is required for the gemini embedding provider")
		}
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Ai.EmbeddingProvider)
	}
}

func llmAPIKey(cfg *config.Config) string {
	switch cfg.Ai.LLMProvider {
	case "gemini":
		return cfg.Keys.GoogleGemini
	case "huggingface":
		return cfg.Keys.HuggingFace
	case "openai":
		return cfg.Keys.OpenAI
	}
	return ""
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMBaseURL != "" {
		return cfg.Ai.LLMBaseURL
	}
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return ""
}

func newConversationRepository(cfg *config.Config, log logger.ILogger) (contract.ConversationRepository, func(), error) {
	if cfg.Rag.ConversationStore != "redis" {
		return memory.NewConversationRepository(cfg.Rag.HistoryTTL, cfg.HistoryMessageCap()), func() {}, nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return redisstore.NewConversationRepository(rdb, cfg.Rag.HistoryTTL, cfg.HistoryMessageCap()), func() { _ = rdb.Close() }, nil
}
