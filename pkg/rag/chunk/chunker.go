package chunk

import (
	"rag-chat-be/pkg/store"
	"rag-chat-be/pkg/utils"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunker splits documents into overlapping fixed-size chunks.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker; non-positive values fall back to the defaults.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = 0
		}
	}
	return &Chunker{size: size, overlap: overlap}
}

func (c *Chunker) Size() int    { return c.size }
func (c *Chunker) Overlap() int { return c.overlap }

// Split chunks every document in order. Chunk indexes restart per document.
// Session ids are not assigned here; the knowledge store tags them on write.
func (c *Chunker) Split(docs ...*store.Document) []*store.Chunk {
	var chunks []*store.Chunk
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for i, text := range utils.SplitText(doc.Text, c.size, c.overlap) {
			chunks = append(chunks, &store.Chunk{
				Content: text,
				Metadata: store.Metadata{
					Type:       doc.Type,
					Source:     doc.Source,
					Title:      doc.Title,
					ChunkIndex: i,
				},
			})
		}
	}
	return chunks
}
