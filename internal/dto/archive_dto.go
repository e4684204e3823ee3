package dto

import "time"

// ArchiveTurnsMessage is published on the in-process bus after every answer
// and persisted by the consumer service.
type ArchiveTurnsMessage struct {
	SessionId string         `json:"session_id"`
	Turns     []ArchivedTurn `json:"turns"`
}

type ArchivedTurn struct {
	Scope     string    `json:"scope"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
