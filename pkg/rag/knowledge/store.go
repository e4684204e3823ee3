package knowledge

import (
	"context"
	"fmt"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/rag"
	"rag-chat-be/pkg/store"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("rag-chat-be/knowledge")

// Store is the vector index seen by the pipeline: embeddings come from the
// provider, vectors and metadata live behind the repository layer.
type Store struct {
	embedder   embedding.EmbeddingProvider
	uowFactory unitofwork.RepositoryFactory
}

func NewStore(embedder embedding.EmbeddingProvider, uowFactory unitofwork.RepositoryFactory) *Store {
	return &Store{
		embedder:   embedder,
		uowFactory: uowFactory,
	}
}

// Add tags every chunk with sessionID, embeds it, and writes the chunks together
// with a ledger row for doc in one transaction. Nothing is written on failure.
func (s *Store) Add(ctx context.Context, sessionID string, doc *store.Document, chunks []*store.Chunk) (int, error) {
	if sessionID == "" {
		return 0, &rag.ValidationError{Field: "session_id", Message: "is required"}
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	ctx, span := tracer.Start(ctx, "knowledge.Add",
		trace.WithAttributes(attribute.String("session.id", sessionID), attribute.Int("chunks", len(chunks))))
	defer span.End()

	entities := make([]*entity.Chunk, 0, len(chunks))
	for _, c := range chunks {
		c.Metadata.SessionID = sessionID
		if c.ID == "" {
			c.ID = uuid.NewString()
		}

		res, err := s.embedder.Generate(ctx, c.Content, embedding.TaskRetrievalDocument)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return 0, &rag.StoreUnavailableError{Op: "embed", Err: err}
		}

		id, err := uuid.Parse(c.ID)
		if err != nil {
			id = uuid.New()
			c.ID = id.String()
		}
		entities = append(entities, &entity.Chunk{
			Id:             id,
			SessionId:      sessionID,
			Type:           string(c.Metadata.Type),
			Source:         c.Metadata.Source,
			Title:          c.Metadata.Title,
			ChunkIndex:     c.Metadata.ChunkIndex,
			Content:        c.Content,
			EmbeddingValue: res.Embedding.Values,
			Metadata: map[string]interface{}{
				"session_id":  sessionID,
				"type":        string(c.Metadata.Type),
				"source":      c.Metadata.Source,
				"title":       c.Metadata.Title,
				"chunk_index": c.Metadata.ChunkIndex,
			},
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, &rag.StoreUnavailableError{Op: "begin", Err: err}
	}

	if doc != nil {
		if err := uow.IngestedDocumentRepository().Create(ctx, &entity.IngestedDocument{
			SessionId:  sessionID,
			Type:       string(doc.Type),
			Source:     doc.Source,
			Title:      doc.Title,
			ChunkCount: len(entities),
		}); err != nil {
			_ = uow.Rollback()
			return 0, &rag.StoreUnavailableError{Op: "record document", Err: err}
		}
	}

	if err := uow.ChunkRepository().CreateBulk(ctx, entities); err != nil {
		_ = uow.Rollback()
		span.SetStatus(codes.Error, err.Error())
		return 0, &rag.StoreUnavailableError{Op: "write chunks", Err: err}
	}

	if err := uow.Commit(); err != nil {
		return 0, &rag.StoreUnavailableError{Op: "commit", Err: err}
	}

	return len(entities), nil
}

// Query returns up to k chunks of the filtered session, best match first.
// An empty result is a valid state, not an error.
func (s *Store) Query(ctx context.Context, text string, k int, filter store.Filter) ([]*store.ScoredChunk, error) {
	if filter.SessionID == "" {
		return nil, &rag.ValidationError{Field: "session_id", Message: "filter requires a session id"}
	}
	if k <= 0 {
		return nil, &rag.ValidationError{Field: "k", Message: fmt.Sprintf("must be positive, got %d", k)}
	}

	ctx, span := tracer.Start(ctx, "knowledge.Query",
		trace.WithAttributes(attribute.String("session.id", filter.SessionID), attribute.Int("k", k)))
	defer span.End()

	res, err := s.embedder.Generate(ctx, text, embedding.TaskRetrievalQuery)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, &rag.StoreUnavailableError{Op: "embed", Err: err}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	hits, err := uow.ChunkRepository().SearchSimilar(ctx, res.Embedding.Values, k, contract.ChunkFilter{
		SessionId: filter.SessionID,
		Type:      string(filter.Type),
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, &rag.StoreUnavailableError{Op: "search", Err: err}
	}

	results := make([]*store.ScoredChunk, 0, len(hits))
	for _, h := range hits {
		results = append(results, &store.ScoredChunk{
			Chunk: &store.Chunk{
				ID:      h.Chunk.Id.String(),
				Content: h.Chunk.Content,
				Metadata: store.Metadata{
					SessionID:  h.Chunk.SessionId,
					Type:       store.DocumentType(h.Chunk.Type),
					Source:     h.Chunk.Source,
					Title:      h.Chunk.Title,
					ChunkIndex: h.Chunk.ChunkIndex,
				},
			},
			Score: h.Similarity,
		})
	}
	span.SetAttributes(attribute.Int("hits", len(results)))
	return results, nil
}

// Documents lists one page of the session's ingest ledger, oldest first.
func (s *Store) Documents(ctx context.Context, sessionID string, page contract.Page) ([]*entity.IngestedDocument, error) {
	if sessionID == "" {
		return nil, &rag.ValidationError{Field: "session_id", Message: "is required"}
	}
	docs, err := s.uowFactory.NewUnitOfWork(ctx).IngestedDocumentRepository().FindBySession(ctx, sessionID, page)
	if err != nil {
		return nil, &rag.StoreUnavailableError{Op: "list documents", Err: err}
	}
	return docs, nil
}
