package unitofwork

import (
	"context"

	"rag-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChunkRepository() contract.ChunkRepository
	IngestedDocumentRepository() contract.IngestedDocumentRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
