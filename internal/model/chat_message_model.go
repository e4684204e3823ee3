package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string    `gorm:"type:varchar(255);not null;index:idx_chat_messages_session_scope"`
	Scope     string    `gorm:"type:varchar(32);not null;index:idx_chat_messages_session_scope"`
	Role      string    `gorm:"type:varchar(16);not null"`
	Content   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
