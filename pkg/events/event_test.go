package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDocumentIngested(t *testing.T) {
	e := NewDocumentIngested("s1", "pdf", "a.pdf", "a.pdf", 3)
	assert.Equal(t, TypeDocumentIngested, e.EventType())
	assert.Equal(t, "s1", e.Payload()["session_id"])
	assert.Equal(t, 3, e.Payload()["chunk_count"])
	assert.WithinDuration(t, time.Now(), e.Timestamp(), time.Second)

	a := NewAnswerGenerated("s1", 4, 1500*time.Millisecond)
	assert.Equal(t, int64(1500), a.Payload()["latency_ms"])

	assert.NoError(t, NopPublisher{}.Publish(context.Background(), e))
}
