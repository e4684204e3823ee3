package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/pkg/events"
	"rag-chat-be/pkg/ingest"
	"rag-chat-be/pkg/observability"
	"rag-chat-be/pkg/rag"
	"rag-chat-be/pkg/rag/chunk"
	"rag-chat-be/pkg/rag/knowledge"
	"rag-chat-be/pkg/rag/response"
	"rag-chat-be/pkg/store"
)

type IIngestService interface {
	IngestPDF(ctx context.Context, request *dto.UploadRequest) (*dto.UploadResponse, error)
	// IngestVideo returns the raw pipeline errors; callers decide how to phrase them.
	IngestVideo(ctx context.Context, sessionId string, url string) (*dto.IngestResult, error)
	ListDocuments(ctx context.Context, request *dto.ListDocumentsRequest) ([]*dto.DocumentResponse, error)
}

type ingestService struct {
	ingestor       *ingest.Ingestor
	chunker        *chunk.Chunker
	knowledgeStore *knowledge.Store
	eventPublisher events.Publisher
	metrics        *observability.Metrics
	logger         logger.ILogger
}

func NewIngestService(
	ingestor *ingest.Ingestor,
	chunker *chunk.Chunker,
	knowledgeStore *knowledge.Store,
	eventPublisher events.Publisher,
	metrics *observability.Metrics,
	log logger.ILogger,
) IIngestService {
	if eventPublisher == nil {
		eventPublisher = events.NopPublisher{}
	}
	return &ingestService{
		ingestor:       ingestor,
		chunker:        chunker,
		knowledgeStore: knowledgeStore,
		eventPublisher: eventPublisher,
		metrics:        metrics,
		logger:         log,
	}
}

func (s *ingestService) IngestPDF(ctx context.Context, request *dto.UploadRequest) (*dto.UploadResponse, error) {
	start := time.Now()

	doc, err := s.ingestor.FromPDF(request.Filename, request.Data)
	if err != nil {
		s.logger.Warn("IngestService", "PDF extraction failed", map[string]interface{}{
			"session_id": request.ThreadId,
			"filename":   request.Filename,
			"error":      err.Error(),
		})
		return nil, dto.NewServiceError(http.StatusInternalServerError, constant.ErrProcessingFile, err)
	}

	result, err := s.save(ctx, request.ThreadId, doc)
	if err != nil {
		return nil, dto.NewServiceError(http.StatusInternalServerError, constant.ErrProcessingFile, err)
	}

	s.observe("ingest_pdf", start)
	return &dto.UploadResponse{Message: response.PDFIngested(result.Source)}, nil
}

func (s *ingestService) IngestVideo(ctx context.Context, sessionId string, url string) (*dto.IngestResult, error) {
	start := time.Now()

	doc, err := s.ingestor.FromVideoURL(ctx, url)
	if err != nil {
		var noTranscript *rag.NoTranscriptError
		if errors.As(err, &noTranscript) {
			s.logger.Info("IngestService", "Video has no transcript", map[string]interface{}{"session_id": sessionId, "url": url})
		} else {
			s.countExternal("transcript")
			s.logger.Warn("IngestService", "Transcript fetch failed", map[string]interface{}{
				"session_id": sessionId,
				"url":        url,
				"error":      err.Error(),
			})
		}
		return nil, err
	}

	result, err := s.save(ctx, sessionId, doc)
	if err != nil {
		return nil, err
	}

	s.observe("ingest_video", start)
	return result, nil
}

// save chunks doc and writes it under sessionId. The write is all or nothing.
func (s *ingestService) save(ctx context.Context, sessionId string, doc *store.Document) (*dto.IngestResult, error) {
	chunks := s.chunker.Split(doc)

	n, err := s.knowledgeStore.Add(ctx, sessionId, doc, chunks)
	if err != nil {
		s.countExternal("knowledge_store")
		s.logger.Error("IngestService", "Failed to store chunks", map[string]interface{}{
			"session_id": sessionId,
			"source":     doc.Source,
			"error":      err.Error(),
		})
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IngestedChunks.WithLabelValues(string(doc.Type)).Add(float64(n))
	}
	s.logger.Info("IngestService", "Document ingested", map[string]interface{}{
		"session_id": sessionId,
		"type":       doc.Type,
		"source":     doc.Source,
		"chunks":     n,
	})

	if err := s.eventPublisher.Publish(ctx, events.NewDocumentIngested(sessionId, string(doc.Type), doc.Source, doc.Title, n)); err != nil {
		s.logger.Warn("IngestService", "Failed to publish ingest event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.IngestResult{
		SessionId:  sessionId,
		Type:       string(doc.Type),
		Source:     doc.Source,
		Title:      doc.DisplayName(),
		ChunkCount: n,
	}, nil
}

func (s *ingestService) ListDocuments(ctx context.Context, request *dto.ListDocumentsRequest) ([]*dto.DocumentResponse, error) {
	page := contract.Page{Limit: request.Limit, Offset: request.Offset}
	docs, err := s.knowledgeStore.Documents(ctx, request.ThreadId, page)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		res = append(res, &dto.DocumentResponse{
			Id:         d.Id,
			Type:       d.Type,
			Source:     d.Source,
			Title:      d.Title,
			ChunkCount: d.ChunkCount,
			CreatedAt:  d.CreatedAt,
		})
	}
	return res, nil
}

func (s *ingestService) observe(stage string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveStage(stage, time.Since(start))
	}
}

func (s *ingestService) countExternal(dependency string) {
	if s.metrics != nil {
		s.metrics.CountExternalError(dependency)
	}
}
