package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"rag-chat-be/pkg/rag"
	"rag-chat-be/pkg/store"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// ExtractPDF decodes an in-memory PDF into a Document tagged "pdf".
// Any decoding failure is reported as *rag.ExtractionError. A parseable PDF
// without a text layer, such as a scan, yields a Document with empty Text.
func ExtractPDF(filename string, data []byte) (doc *store.Document, err error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), pdfMagic) {
		return nil, &rag.ExtractionError{Source: filename, Err: errors.New("not a pdf file")}
	}

	// the pdf reader panics on some malformed cross reference tables
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &rag.ExtractionError{Source: filename, Err: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &rag.ExtractionError{Source: filename, Err: err}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, &rag.ExtractionError{Source: filename, Err: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, &rag.ExtractionError{Source: filename, Err: err}
	}

	return &store.Document{
		Text:   strings.TrimSpace(buf.String()),
		Source: filename,
		Title:  filename,
		Type:   store.DocumentTypePDF,
	}, nil
}
