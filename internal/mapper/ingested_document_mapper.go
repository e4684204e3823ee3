package mapper

import (
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/model"
)

type IngestedDocumentMapper struct{}

func NewIngestedDocumentMapper() *IngestedDocumentMapper {
	return &IngestedDocumentMapper{}
}

func (m *IngestedDocumentMapper) ToEntity(d *model.IngestedDocument) *entity.IngestedDocument {
	if d == nil {
		return nil
	}
	return &entity.IngestedDocument{
		Id:         d.Id,
		SessionId:  d.SessionId,
		Type:       d.Type,
		Source:     d.Source,
		Title:      d.Title,
		ChunkCount: d.ChunkCount,
		CreatedAt:  d.CreatedAt,
	}
}

func (m *IngestedDocumentMapper) ToModel(d *entity.IngestedDocument) *model.IngestedDocument {
	if d == nil {
		return nil
	}
	return &model.IngestedDocument{
		Id:         d.Id,
		SessionId:  d.SessionId,
		Type:       d.Type,
		Source:     d.Source,
		Title:      d.Title,
		ChunkCount: d.ChunkCount,
		CreatedAt:  d.CreatedAt,
	}
}

func (m *IngestedDocumentMapper) ToEntities(docs []*model.IngestedDocument) []*entity.IngestedDocument {
	entities := make([]*entity.IngestedDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
