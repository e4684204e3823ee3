package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Rag      RagConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	BodyLimitMB        int
	NatsURL            string
	RedisURL           string
	ArchiveTopic       string
	OtelEnabled        bool
}

type DatabaseConfig struct {
	Connection string
	// VectorStore selects "postgres" (pgvector). "memory" is a non-durable
	// brute-force store for local runs and tests only.
	VectorStore string
}

type APIKeys struct {
	GoogleGemini string
	Jina         string
	OpenAI       string
	HuggingFace  string
}

type AIConfig struct {
	EmbeddingProvider  string // "gemini", "ollama", "jina" or "openai"
	EmbeddingModel     string
	EmbeddingDimension int
	OllamaBaseURL      string
	OllamaModel        string
	LLMProvider        string // "gemini", "ollama", "huggingface" or "openai"
	LLMModel           string
	LLMBaseURL         string
	Temperature        float64
}

type RagConfig struct {
	ChunkSize          int
	ChunkOverlap       int
	TopK               int
	MaxContextRunes    int
	HistoryTurns       int // question and reply exchanges kept per memory scope
	HistoryTTL         time.Duration
	ConversationStore  string // "memory" or "redis"
	RetryAttempts      int
	TranscriptLanguage string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			BodyLimitMB:        getEnvAsInt("BODY_LIMIT_MB", 10),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ArchiveTopic:       getEnv("ARCHIVE_TOPIC_NAME", "ARCHIVE_CHAT_TURNS"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Database: DatabaseConfig{
			Connection:  getEnv("DB_CONNECTION_STRING", ""),
			VectorStore: getEnv("VECTOR_STORE", "postgres"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:     getEnv("EMBEDDING_MODEL", ""),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 768),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:        getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:        getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:           getEnv("LLM_MODEL", "gemini-1.5-flash"),
			LLMBaseURL:         getEnv("LLM_BASE_URL", ""),
			Temperature:        getEnvAsFloat("LLM_TEMPERATURE", 0),
		},
		Rag: RagConfig{
			ChunkSize:          getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:       getEnvAsInt("CHUNK_OVERLAP", 200),
			TopK:               getEnvAsInt("RETRIEVAL_TOP_K", 4),
			MaxContextRunes:    getEnvAsInt("MAX_CONTEXT_RUNES", 12000),
			HistoryTurns:       getEnvAsInt("HISTORY_TURNS", 10),
			HistoryTTL:         getEnvAsDuration("HISTORY_TTL", time.Hour),
			ConversationStore:  getEnv("CONVERSATION_STORE", "memory"),
			RetryAttempts:      getEnvAsInt("RETRY_ATTEMPTS", 3),
			TranscriptLanguage: getEnv("TRANSCRIPT_LANGUAGE", "en"),
		},
	}
}

// IsProduction reports whether logs should be JSON only.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// HistoryMessageCap is the number of stored messages that holds HistoryTurns
// exchanges. Every exchange is a user message followed by an assistant message.
func (c *Config) HistoryMessageCap() int {
	if c.Rag.HistoryTurns <= 0 {
		return 0
	}
	return 2 * c.Rag.HistoryTurns
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
