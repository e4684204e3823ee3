package mapper

import (
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(c *model.Chunk) *entity.Chunk {
	if c == nil {
		return nil
	}
	return &entity.Chunk{
		Id:             c.Id,
		SessionId:      c.SessionId,
		Type:           c.Type,
		Source:         c.Source,
		Title:          c.Title,
		ChunkIndex:     c.ChunkIndex,
		Content:        c.Document,
		EmbeddingValue: c.EmbeddingValue.Slice(),
		Metadata:       map[string]interface{}(c.Metadata),
		CreatedAt:      c.CreatedAt,
	}
}

func (m *ChunkMapper) ToModel(c *entity.Chunk) *model.Chunk {
	if c == nil {
		return nil
	}
	return &model.Chunk{
		Id:             c.Id,
		SessionId:      c.SessionId,
		Type:           c.Type,
		Source:         c.Source,
		Title:          c.Title,
		ChunkIndex:     c.ChunkIndex,
		Document:       c.Content,
		EmbeddingValue: pgvector.NewVector(c.EmbeddingValue),
		Metadata:       datatypes.JSONMap(c.Metadata),
		CreatedAt:      c.CreatedAt,
	}
}

func (m *ChunkMapper) ToModels(chunks []*entity.Chunk) []*model.Chunk {
	models := make([]*model.Chunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
