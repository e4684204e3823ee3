package model

import (
	"time"

	"github.com/google/uuid"
)

type IngestedDocument struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  string    `gorm:"type:varchar(255);not null;index"`
	Type       string    `gorm:"type:varchar(32);not null"`
	Source     string    `gorm:"type:text;not null"`
	Title      string    `gorm:"type:text"`
	ChunkCount int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (IngestedDocument) TableName() string {
	return "ingested_documents"
}
