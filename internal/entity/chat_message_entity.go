package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID
	SessionId string
	Scope     string
	Role      string
	Content   string
	CreatedAt time.Time
}
