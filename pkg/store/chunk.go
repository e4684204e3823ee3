package store

// Metadata is attached to every stored chunk and drives retrieval filters.
type Metadata struct {
	SessionID  string       `json:"session_id"`
	Type       DocumentType `json:"type"`
	Source     string       `json:"source"`
	Title      string       `json:"title,omitempty"`
	ChunkIndex int          `json:"chunk_index"`
}

// Chunk is the unit of embedding and retrieval.
type Chunk struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// ScoredChunk is a retrieval hit; Score is cosine similarity (1.0 = identical).
type ScoredChunk struct {
	Chunk *Chunk  `json:"chunk"`
	Score float64 `json:"score"`
}

// Filter restricts retrieval by exact metadata equality.
// SessionID is mandatory; Type is optional.
type Filter struct {
	SessionID string
	Type      DocumentType
}
