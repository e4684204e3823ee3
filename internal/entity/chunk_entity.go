package entity

import (
	"time"

	"github.com/google/uuid"
)

type Chunk struct {
	Id             uuid.UUID
	SessionId      string
	Type           string
	Source         string
	Title          string
	ChunkIndex     int
	Content        string
	EmbeddingValue []float32
	Metadata       map[string]interface{}
	CreatedAt      time.Time
}
