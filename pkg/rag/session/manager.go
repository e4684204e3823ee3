package session

import (
	"strings"

	"rag-chat-be/internal/constant"

	"github.com/google/uuid"
)

// NewID mints an opaque session identifier for clients that do not supply one.
func NewID() string {
	return constant.SessionIDPrefix + uuid.NewString()
}

// Normalize trims the caller-supplied thread id. Ids are otherwise opaque.
func Normalize(threadID string) string {
	return strings.TrimSpace(threadID)
}
