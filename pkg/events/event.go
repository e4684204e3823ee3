package events

import (
	"context"
	"time"
)

const (
	TypeDocumentIngested = "document.ingested"
	TypeAnswerGenerated  = "answer.generated"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the subject suffix for this event (e.g., "document.ingested").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher sends events to an external bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewDocumentIngested(sessionID, docType, source, title string, chunks int) Event {
	now := time.Now()
	return BaseEvent{
		Type: TypeDocumentIngested,
		Data: map[string]interface{}{
			"session_id":  sessionID,
			"type":        docType,
			"source":      source,
			"title":       title,
			"chunk_count": chunks,
			"occurred_at": now.Format(time.RFC3339),
		},
		OccurredAt: now,
	}
}

func NewAnswerGenerated(sessionID string, contextChunks int, latency time.Duration) Event {
	now := time.Now()
	return BaseEvent{
		Type: TypeAnswerGenerated,
		Data: map[string]interface{}{
			"session_id":     sessionID,
			"context_chunks": contextChunks,
			"latency_ms":     latency.Milliseconds(),
			"occurred_at":    now.Format(time.RFC3339),
		},
		OccurredAt: now,
	}
}

// NopPublisher drops every event. Used when no bus is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}
