package contract

import (
	"context"

	"rag-chat-be/internal/entity"
)

type IngestedDocumentRepository interface {
	Create(ctx context.Context, doc *entity.IngestedDocument) error
	// FindBySession lists a session's ledger oldest first.
	FindBySession(ctx context.Context, sessionId string, page Page) ([]*entity.IngestedDocument, error)
}
