package nats

import (
	"testing"

	"rag-chat-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	e := events.NewDocumentIngested("s1", "pdf", "a.pdf", "a.pdf", 1)
	assert.Equal(t, "events.document.ingested", Subject(e))
}
