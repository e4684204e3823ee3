package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateRequest struct {
	Query    string `json:"query" validate:"required"`
	ThreadId string `json:"thread_id" validate:"required"`
}

type UploadRequest struct {
	ThreadId string `validate:"required"`
	Filename string `validate:"required"`
	Data     []byte `validate:"required"`
}

type UploadResponse struct {
	Message string `json:"message"`
}

type CreateSessionResponse struct {
	ThreadId string `json:"thread_id"`
}

// ListDocumentsRequest pages a session's ledger. A zero Limit lists everything.
type ListDocumentsRequest struct {
	ThreadId string `query:"thread_id" validate:"required"`
	Limit    int    `query:"limit" validate:"min=0,max=100"`
	Offset   int    `query:"offset" validate:"min=0"`
}

type ListHistoryRequest struct {
	ThreadId string `query:"thread_id" validate:"required"`
	Scope    string `query:"scope" validate:"omitempty,oneof=rewriter answer"`
	Limit    int    `query:"limit" validate:"min=0,max=100"`
	Offset   int    `query:"offset" validate:"min=0"`
}

type HistoryMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Scope     string    `json:"scope"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type DocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Source     string    `json:"source"`
	Title      string    `json:"title"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// IngestResult summarises one successful ingest.
type IngestResult struct {
	SessionId  string
	Type       string
	Source     string
	Title      string
	ChunkCount int
}
