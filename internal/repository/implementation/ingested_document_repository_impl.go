package implementation

import (
	"context"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/mapper"
	"rag-chat-be/internal/model"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type IngestedDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IngestedDocumentMapper
}

func NewIngestedDocumentRepository(db *gorm.DB) contract.IngestedDocumentRepository {
	return &IngestedDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewIngestedDocumentMapper(),
	}
}

func (r *IngestedDocumentRepositoryImpl) Create(ctx context.Context, doc *entity.IngestedDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *IngestedDocumentRepositoryImpl) FindBySession(ctx context.Context, sessionId string, page contract.Page) ([]*entity.IngestedDocument, error) {
	var models []*model.IngestedDocument
	query := r.db.WithContext(ctx)
	for _, spec := range []specification.Specification{
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
		specification.Pagination{Page: page},
	} {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
