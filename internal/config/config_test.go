package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "")
	t.Setenv("HISTORY_TTL", "")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("VECTOR_STORE", "")

	cfg := Load()

	assert.Equal(t, 1000, cfg.Rag.ChunkSize)
	assert.Equal(t, 200, cfg.Rag.ChunkOverlap)
	assert.Equal(t, 4, cfg.Rag.TopK)
	assert.Equal(t, time.Hour, cfg.Rag.HistoryTTL)
	assert.False(t, cfg.App.OtelEnabled)
	assert.Equal(t, "postgres", cfg.Database.VectorStore)
	assert.Equal(t, 10, cfg.Rag.HistoryTurns)
	assert.Equal(t, 20, cfg.HistoryMessageCap())
}

func TestHistoryMessageCap(t *testing.T) {
	for turns, want := range map[int]int{0: 0, -1: 0, 1: 2, 3: 6, 10: 20} {
		cfg := &Config{Rag: RagConfig{HistoryTurns: turns}}
		assert.Equal(t, want, cfg.HistoryMessageCap(), "turns=%d", turns)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("HISTORY_TTL", "15m")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("CONVERSATION_STORE", "redis")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, 500, cfg.Rag.ChunkSize)
	assert.Equal(t, 15*time.Minute, cfg.Rag.HistoryTTL)
	assert.True(t, cfg.App.OtelEnabled)
	assert.Equal(t, "redis", cfg.Rag.ConversationStore)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "ten")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_FLOAT", "warm")

	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.True(t, getEnvAsBool("X_BOOL", true))
	assert.Equal(t, time.Second, getEnvAsDuration("X_DUR", time.Second))
	assert.Equal(t, 0.5, getEnvAsFloat("X_FLOAT", 0.5))
}
