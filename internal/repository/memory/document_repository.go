package memory

import (
	"context"
	"sort"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/contract"
)

type IngestedDocumentRepository struct {
	uow *UnitOfWork
}

var _ contract.IngestedDocumentRepository = &IngestedDocumentRepository{}

func (r *IngestedDocumentRepository) Create(ctx context.Context, doc *entity.IngestedDocument) error {
	stamp(&doc.Id, &doc.CreatedAt)
	cp := *doc
	r.uow.stage(func(p *pending) {
		p.documents = append(p.documents, &cp)
	})
	return nil
}

func (r *IngestedDocumentRepository) FindBySession(ctx context.Context, sessionId string, page contract.Page) ([]*entity.IngestedDocument, error) {
	db := r.uow.db
	db.mu.RLock()
	defer db.mu.RUnlock()

	docs := make([]*entity.IngestedDocument, 0)
	for _, d := range db.documents {
		if d.SessionId == sessionId {
			cp := *d
			docs = append(docs, &cp)
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	start, end := page.Window(len(docs))
	return docs[start:end], nil
}
