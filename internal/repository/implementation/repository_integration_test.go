package implementation_test

import (
	"context"
	"os"
	"testing"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/model"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/implementation"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, db.Exec(`CREATE EXTENSION IF NOT EXISTS vector`).Error)
	require.NoError(t, db.AutoMigrate(&model.Chunk{}, &model.IngestedDocument{}, &model.ChatMessage{}))
	return db
}

func unitVector(hot int) []float32 {
	v := make([]float32, 768)
	v[hot] = 1
	return v
}

func TestChunkRepository_SessionFilter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s1, s2 := "it_"+uuid.NewString(), "it_"+uuid.NewString()
	t.Cleanup(func() {
		db.Where("session_id IN ?", []string{s1, s2}).Delete(&model.Chunk{})
	})

	repo := implementation.NewChunkRepository(db)
	require.NoError(t, repo.CreateBulk(ctx, []*entity.Chunk{
		{SessionId: s1, Type: "pdf", Source: "a.pdf", Content: "X is a fruit.", EmbeddingValue: unitVector(0)},
		{SessionId: s1, Type: "youtube", Source: "https://youtu.be/x", Content: "Z is a song.", EmbeddingValue: unitVector(1)},
		{SessionId: s2, Type: "pdf", Source: "b.pdf", Content: "Y is a planet.", EmbeddingValue: unitVector(0)},
	}))

	hits, err := repo.SearchSimilar(ctx, unitVector(0), 4, contract.ChunkFilter{SessionId: s1})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "X is a fruit.", hits[0].Chunk.Content)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	for _, h := range hits {
		assert.Equal(t, s1, h.Chunk.SessionId)
	}

	hits, err = repo.SearchSimilar(ctx, unitVector(0), 4, contract.ChunkFilter{SessionId: s1, Type: "youtube"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Z is a song.", hits[0].Chunk.Content)

	count, err := repo.CountBySession(ctx, s2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnitOfWork_RollbackLeavesNoRows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	session := "it_" + uuid.NewString()

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.IngestedDocumentRepository().Create(ctx, &entity.IngestedDocument{
		SessionId: session, Type: "pdf", Source: "a.pdf", Title: "a.pdf", ChunkCount: 1,
	}))
	require.NoError(t, uow.ChunkRepository().CreateBulk(ctx, []*entity.Chunk{
		{SessionId: session, Type: "pdf", Source: "a.pdf", Content: "X", EmbeddingValue: unitVector(2)},
	}))
	require.NoError(t, uow.Rollback())

	docs, err := implementation.NewIngestedDocumentRepository(db).FindBySession(ctx, session, contract.Page{})
	require.NoError(t, err)
	assert.Empty(t, docs)

	count, err := implementation.NewChunkRepository(db).CountBySession(ctx, session)
	require.NoError(t, err)
	assert.Zero(t, count)
}
