package memory

import (
	"context"
	"testing"
	"time"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkRepository_SearchIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewDatabase()).NewUnitOfWork(ctx)
	repo := uow.ChunkRepository()

	require.NoError(t, repo.CreateBulk(ctx, []*entity.Chunk{
		{SessionId: "s1", Type: "pdf", Content: "apple", EmbeddingValue: []float32{1, 0}},
		{SessionId: "s1", Type: "youtube", Content: "pear", EmbeddingValue: []float32{0.6, 0.8}},
		{SessionId: "s2", Type: "pdf", Content: "secret", EmbeddingValue: []float32{1, 0}},
	}))

	hits, err := repo.SearchSimilar(ctx, []float32{1, 0}, 4, contract.ChunkFilter{SessionId: "s1"})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "apple", hits[0].Chunk.Content)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "pear", hits[1].Chunk.Content)

	hits, err = repo.SearchSimilar(ctx, []float32{1, 0}, 4, contract.ChunkFilter{SessionId: "s1", Type: "youtube"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "pear", hits[0].Chunk.Content)

	hits, err = repo.SearchSimilar(ctx, []float32{1, 0}, 4, contract.ChunkFilter{SessionId: "s3"})
	require.NoError(t, err)
	assert.Empty(t, hits)

	n, err := repo.CountBySession(ctx, "s2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUnitOfWork_StagesUntilCommit(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewDatabase())

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.IngestedDocumentRepository().Create(ctx, &entity.IngestedDocument{SessionId: "s1", Source: "a.pdf"}))
	require.NoError(t, uow.ChunkRepository().CreateBulk(ctx, []*entity.Chunk{{SessionId: "s1", EmbeddingValue: []float32{1}}}))

	reader := factory.NewUnitOfWork(ctx)
	docs, err := reader.IngestedDocumentRepository().FindBySession(ctx, "s1", contract.Page{})
	require.NoError(t, err)
	assert.Empty(t, docs, "uncommitted writes are invisible")

	require.NoError(t, uow.Rollback())
	assert.Error(t, uow.Commit())

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.IngestedDocumentRepository().Create(ctx, &entity.IngestedDocument{SessionId: "s1", Source: "b.pdf"}))
	require.NoError(t, uow.Commit())

	docs, err = reader.IngestedDocumentRepository().FindBySession(ctx, "s1", contract.Page{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b.pdf", docs[0].Source)

	n, err := reader.ChunkRepository().CountBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIngestedDocumentRepository_Pages(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewDatabase())

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	for _, src := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		require.NoError(t, uow.IngestedDocumentRepository().Create(ctx, &entity.IngestedDocument{SessionId: "s1", Source: src}))
	}
	require.NoError(t, uow.Commit())

	repo := factory.NewUnitOfWork(ctx).IngestedDocumentRepository()
	tests := []struct {
		name string
		page contract.Page
		want []string
	}{
		{name: "everything", page: contract.Page{}, want: []string{"a.pdf", "b.pdf", "c.pdf"}},
		{name: "first page", page: contract.Page{Limit: 2}, want: []string{"a.pdf", "b.pdf"}},
		{name: "second page", page: contract.Page{Limit: 2, Offset: 2}, want: []string{"c.pdf"}},
		{name: "past the end", page: contract.Page{Limit: 2, Offset: 9}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := repo.FindBySession(ctx, "s1", tt.page)
			require.NoError(t, err)
			got := make([]string, 0, len(docs))
			for _, d := range docs {
				got = append(got, d.Source)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChatMessageRepository_FindByScope(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewDatabase()).NewUnitOfWork(ctx).ChatMessageRepository()

	require.NoError(t, repo.CreateBulk(ctx, []*entity.ChatMessage{
		{SessionId: "s1", Scope: store.ScopeAnswer, Role: store.RoleUser, Content: "q"},
		{SessionId: "s1", Scope: store.ScopeAnswer, Role: store.RoleAssistant, Content: "a"},
		{SessionId: "s1", Scope: store.ScopeRewriter, Role: store.RoleUser, Content: "r"},
	}))

	msgs, err := repo.FindBySession(ctx, "s1", store.ScopeAnswer, contract.Page{})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "q", msgs[0].Content)

	all, err := repo.FindBySession(ctx, "s1", "", contract.Page{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	tail, err := repo.FindBySession(ctx, "s1", "", contract.Page{Limit: 5, Offset: 1})
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "a", tail[0].Content)
}

func TestConversationRepository_TrimsAndScopes(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(time.Minute, 2)

	require.NoError(t, repo.Append(ctx, "s1", store.ScopeAnswer,
		store.Turn{Role: store.RoleUser, Content: "1"},
		store.Turn{Role: store.RoleAssistant, Content: "2"},
		store.Turn{Role: store.RoleUser, Content: "3"},
	))

	history, err := repo.History(ctx, "s1", store.ScopeAnswer)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2", history[0].Content)

	history[0].Content = "mutated"
	again, _ := repo.History(ctx, "s1", store.ScopeAnswer)
	assert.Equal(t, "2", again[0].Content)

	other, err := repo.History(ctx, "s2", store.ScopeAnswer)
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, repo.Clear(ctx, "s1"))
	history, _ = repo.History(ctx, "s1", store.ScopeAnswer)
	assert.Empty(t, history)
}
