package contract

import (
	"context"

	"rag-chat-be/internal/entity"
)

// ScoredChunk wraps a Chunk with its similarity score
type ScoredChunk struct {
	Chunk      *entity.Chunk
	Similarity float64 // 1.0 = identical
}

// ChunkFilter is an exact-match metadata filter. SessionId is required.
type ChunkFilter struct {
	SessionId string
	Type      string
}

type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	// SearchSimilar returns at most limit chunks matching filter, highest similarity first.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, filter ChunkFilter) ([]*ScoredChunk, error)
	CountBySession(ctx context.Context, sessionId string) (int64, error)
}
