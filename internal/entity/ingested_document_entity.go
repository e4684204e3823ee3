package entity

import (
	"time"

	"github.com/google/uuid"
)

type IngestedDocument struct {
	Id         uuid.UUID
	SessionId  string
	Type       string
	Source     string
	Title      string
	ChunkCount int
	CreatedAt  time.Time
}
