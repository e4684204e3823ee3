package ingest

import (
	"context"
	"strings"

	"rag-chat-be/pkg/store"
)

// Fetcher retrieves caption text for a video link.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Transcript, error)
}

// Ingestor turns uploaded files and video links into Documents.
type Ingestor struct {
	fetcher Fetcher
}

func NewIngestor(fetcher Fetcher) *Ingestor {
	return &Ingestor{fetcher: fetcher}
}

func (i *Ingestor) FromPDF(filename string, data []byte) (*store.Document, error) {
	return ExtractPDF(filename, data)
}

func (i *Ingestor) FromVideoURL(ctx context.Context, rawURL string) (*store.Document, error) {
	rawURL = strings.TrimSpace(rawURL)
	t, err := i.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return t.ToDocument(rawURL), nil
}
