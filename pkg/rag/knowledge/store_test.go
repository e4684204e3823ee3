package knowledge

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"testing"

	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/memory"
	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/rag"
	"rag-chat-be/pkg/rag/chunk"
	"rag-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bagOfWords hashes lowercase words into a small vector.
type bagOfWords struct {
	fail bool
}

func (b *bagOfWords) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if b.fail {
		return nil, errors.New("connection refused")
	}
	vec := make([]float32, 32)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(strings.Trim(w, ".,?!")))
		vec[h.Sum32()%32]++
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: vec}}, nil
}

func newStore(embedder embedding.EmbeddingProvider) *Store {
	return NewStore(embedder, memory.NewRepositoryFactory(memory.NewDatabase()))
}

func addDoc(t *testing.T, s *Store, session, text string, typ store.DocumentType) {
	t.Helper()
	doc := &store.Document{Text: text, Source: "src-" + session, Type: typ}
	chunks := chunk.NewChunker(0, 0).Split(doc)
	n, err := s.Add(context.Background(), session, doc, chunks)
	require.NoError(t, err)
	require.Equal(t, len(chunks), n)
	for _, c := range chunks {
		assert.Equal(t, session, c.Metadata.SessionID)
	}
}

func TestStore_SessionIsolation(t *testing.T) {
	ctx := context.Background()
	s := newStore(&bagOfWords{})

	addDoc(t, s, "s1", "X is a fruit.", store.DocumentTypePDF)
	addDoc(t, s, "s2", "Y is a planet.", store.DocumentTypePDF)

	hits, err := s.Query(ctx, "What is X?", 4, store.Filter{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "X is a fruit.", hits[0].Chunk.Content)
	assert.Equal(t, "s1", hits[0].Chunk.Metadata.SessionID)

	hits, err = s.Query(ctx, "What is X?", 4, store.Filter{SessionID: "s2"})
	require.NoError(t, err)
	for _, h := range hits {
		assert.Equal(t, "s2", h.Chunk.Metadata.SessionID)
		assert.NotContains(t, h.Chunk.Content, "fruit")
	}

	hits, err = s.Query(ctx, "What is X?", 4, store.Filter{SessionID: "s3"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestStore_QueryRespectsKAndType(t *testing.T) {
	ctx := context.Background()
	s := newStore(&bagOfWords{})

	long := strings.Repeat("apples grow on trees in the orchard. ", 200)
	addDoc(t, s, "s1", long, store.DocumentTypePDF)
	addDoc(t, s, "s1", "a video about apples", store.DocumentTypeYouTube)

	hits, err := s.Query(ctx, "apples", 4, store.Filter{SessionID: "s1"})
	require.NoError(t, err)
	assert.Len(t, hits, 4)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}

	hits, err = s.Query(ctx, "apples", 4, store.Filter{SessionID: "s1", Type: store.DocumentTypeYouTube})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, store.DocumentTypeYouTube, hits[0].Chunk.Metadata.Type)

	docs, err := s.Documents(ctx, "s1", contract.Page{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Greater(t, docs[0].ChunkCount, 1)

	docs, err = s.Documents(ctx, "s1", contract.Page{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, string(store.DocumentTypeYouTube), docs[0].Type)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := newStore(&bagOfWords{}).Query(ctx, "x", 4, store.Filter{})
	var validation *rag.ValidationError
	assert.True(t, errors.As(err, &validation))

	down := newStore(&bagOfWords{fail: true})
	_, err = down.Query(ctx, "x", 4, store.Filter{SessionID: "s1"})
	var unavailable *rag.StoreUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "embed", unavailable.Op)

	doc := &store.Document{Text: "X is a fruit.", Source: "a.pdf", Type: store.DocumentTypePDF}
	_, err = down.Add(ctx, "s1", doc, chunk.NewChunker(0, 0).Split(doc))
	require.True(t, errors.As(err, &unavailable))

	docs, err := down.Documents(ctx, "s1", contract.Page{})
	require.NoError(t, err)
	assert.Empty(t, docs, "failed ingest leaves no ledger row")
}
