package store

// DocumentType tags where a document's text came from.
type DocumentType string

const (
	DocumentTypePDF     DocumentType = "pdf"
	DocumentTypeYouTube DocumentType = "youtube"
)

// Document is raw extracted text waiting to be chunked. It is never persisted as a whole.
type Document struct {
	Text   string       `json:"text"`
	Source string       `json:"source"` // filename or URL
	Title  string       `json:"title"`
	Type   DocumentType `json:"type"`
}

// DisplayName returns the most human-friendly label for acknowledgements.
func (d *Document) DisplayName() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Source
}
