package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Chunk struct {
	Id             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      string            `gorm:"type:varchar(255);not null;index"`
	Type           string            `gorm:"type:varchar(32);not null;index"`
	Source         string            `gorm:"type:text"`
	Title          string            `gorm:"type:text"`
	ChunkIndex     int               `gorm:"default:0"`
	Document       string            `gorm:"type:text"`
	EmbeddingValue pgvector.Vector   `gorm:"type:vector(768)"` // Gemini text-embedding-004 uses 768 dimensions
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
}

func (Chunk) TableName() string {
	return "chunks"
}
