package memory

import (
	"context"
	"math"
	"sort"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/contract"
)

type ChunkRepository struct {
	uow *UnitOfWork
}

var _ contract.ChunkRepository = &ChunkRepository{}

func (r *ChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	stored := make([]*entity.Chunk, len(chunks))
	for i, c := range chunks {
		stamp(&c.Id, &c.CreatedAt)
		cp := *c
		cp.EmbeddingValue = append([]float32(nil), c.EmbeddingValue...)
		stored[i] = &cp
	}
	r.uow.stage(func(p *pending) {
		p.chunks = append(p.chunks, stored...)
	})
	return nil
}

func (r *ChunkRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int, filter contract.ChunkFilter) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 4
	}

	db := r.uow.db
	db.mu.RLock()
	var results []*contract.ScoredChunk
	for _, c := range db.chunks {
		if c.SessionId != filter.SessionId {
			continue
		}
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		cp := *c
		results = append(results, &contract.ScoredChunk{
			Chunk:      &cp,
			Similarity: cosine(embedding, c.EmbeddingValue),
		})
	}
	db.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *ChunkRepository) CountBySession(ctx context.Context, sessionId string) (int64, error) {
	db := r.uow.db
	db.mu.RLock()
	defer db.mu.RUnlock()

	var n int64
	for _, c := range db.chunks {
		if c.SessionId == sessionId {
			n++
		}
	}
	return n, nil
}

// naive cosine similarity
func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
