package memory

import (
	"context"
	"sync"
	"time"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Database is a process-local stand-in for the postgres schema. It backs
// VECTOR_STORE=memory for local runs and the service tests. Search is a linear
// scan and nothing survives a restart.
type Database struct {
	mu        sync.RWMutex
	chunks    []*entity.Chunk
	documents []*entity.IngestedDocument
	messages  []*entity.ChatMessage
}

func NewDatabase() *Database {
	return &Database{}
}

type pending struct {
	chunks    []*entity.Chunk
	documents []*entity.IngestedDocument
	messages  []*entity.ChatMessage
}

func (d *Database) apply(p *pending) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.chunks = append(d.chunks, p.chunks...)
	d.documents = append(d.documents, p.documents...)
	d.messages = append(d.messages, p.messages...)
}

type RepositoryFactory struct {
	db *Database
}

func NewRepositoryFactory(db *Database) unitofwork.RepositoryFactory {
	return &RepositoryFactory{db: db}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &UnitOfWork{db: f.db}
}

// UnitOfWork stages writes made between Begin and Commit and publishes them
// atomically. Writes outside a transaction are applied immediately.
type UnitOfWork struct {
	mu sync.Mutex
	db *Database
	tx *pending
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return errTxStarted
	}
	u.tx = &pending{}
	return nil
}

func (u *UnitOfWork) Commit() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx == nil {
		return errNoTx
	}
	u.db.apply(u.tx)
	u.tx = nil
	return nil
}

func (u *UnitOfWork) Rollback() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx == nil {
		return errNoTx
	}
	u.tx = nil
	return nil
}

// stage runs fn against the open transaction, or against a throwaway one
// that is applied right away.
func (u *UnitOfWork) stage(fn func(p *pending)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		fn(u.tx)
		return
	}
	p := &pending{}
	fn(p)
	u.db.apply(p)
}

func (u *UnitOfWork) ChunkRepository() contract.ChunkRepository {
	return &ChunkRepository{uow: u}
}

func (u *UnitOfWork) IngestedDocumentRepository() contract.IngestedDocumentRepository {
	return &IngestedDocumentRepository{uow: u}
}

func (u *UnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &ChatMessageRepository{uow: u}
}

func stamp(id *uuid.UUID, createdAt *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
}
