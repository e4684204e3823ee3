package service

import (
	"context"
	"testing"
	"time"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/memory"
	"rag-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_ListHistory(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewRepositoryFactory(memory.NewDatabase())

	now := time.Now()
	require.NoError(t, factory.NewUnitOfWork(ctx).ChatMessageRepository().CreateBulk(ctx, []*entity.ChatMessage{
		{SessionId: "s1", Scope: store.ScopeRewriter, Role: store.RoleUser, Content: "What is X?", CreatedAt: now},
		{SessionId: "s1", Scope: store.ScopeRewriter, Role: store.RoleAssistant, Content: "What is X according to the document?", CreatedAt: now},
		{SessionId: "s1", Scope: store.ScopeAnswer, Role: store.RoleUser, Content: "What is X according to the document?", CreatedAt: now},
		{SessionId: "s1", Scope: store.ScopeAnswer, Role: store.RoleAssistant, Content: "X is a fruit.", CreatedAt: now},
		{SessionId: "s2", Scope: store.ScopeAnswer, Role: store.RoleUser, Content: "secret", CreatedAt: now},
	}))

	svc := NewHistoryService(factory, logger.NewNopLogger())

	all, err := svc.ListHistory(ctx, &dto.ListHistoryRequest{ThreadId: " s1 "})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for _, m := range all {
		assert.NotEqual(t, "secret", m.Content)
	}

	answers, err := svc.ListHistory(ctx, &dto.ListHistoryRequest{ThreadId: "s1", Scope: store.ScopeAnswer})
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, store.RoleUser, answers[0].Role)
	assert.Equal(t, "X is a fruit.", answers[1].Content)

	page, err := svc.ListHistory(ctx, &dto.ListHistoryRequest{ThreadId: "s1", Limit: 1, Offset: 3})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "X is a fruit.", page[0].Content)

	none, err := svc.ListHistory(ctx, &dto.ListHistoryRequest{ThreadId: "s3"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHistoryService_ReadsArchivedGenerateTurns(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	factory := memory.NewRepositoryFactory(f.db)
	require.NoError(t, NewConsumerService(f.pubSub, "archive", factory, f.metrics, logger.NewNopLogger()).Consume(ctx))

	f.upload(t, "s1", "X is a fruit.")
	_, err := f.chat.Generate(ctx, &dto.GenerateRequest{Query: "What is X?", ThreadId: "s1"})
	require.NoError(t, err)

	svc := NewHistoryService(factory, logger.NewNopLogger())
	require.Eventually(t, func() bool {
		turns, err := svc.ListHistory(ctx, &dto.ListHistoryRequest{ThreadId: "s1", Scope: store.ScopeAnswer})
		return err == nil && len(turns) == 2
	}, time.Second, 10*time.Millisecond)
}
