package implementation

import (
	"context"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/mapper"
	"rag-chat-be/internal/model"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)

	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}

	// Update IDs back to entities
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

// SearchSimilar ranks by cosine similarity.
// pgvector's <=> is cosine distance, so similarity = 1 - distance.
func (r *ChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, filter contract.ChunkFilter) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 4
	}

	type result struct {
		model.Chunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("chunks").
		Select("chunks.*, 1 - (embedding_value <=> ?) AS similarity", queryVector)
	query = r.applySpecifications(query,
		specification.BySessionID{SessionID: filter.SessionId},
		specification.ByDocumentType{Type: filter.Type},
	)

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunk, len(results))
	for i := range results {
		scored[i] = &contract.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&results[i].Chunk),
			Similarity: results[i].Similarity,
		}
	}
	return scored, nil
}

func (r *ChunkRepositoryImpl) CountBySession(ctx context.Context, sessionId string) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specification.BySessionID{SessionID: sessionId})
	err := query.Model(&model.Chunk{}).Count(&count).Error
	return count, err
}
