package rag

import "fmt"

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ExtractionError reports a source that could not be turned into text.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %q: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NoTranscriptError is returned when a video has no caption track.
// Callers surface it as an informational reply, not as a failure.
type NoTranscriptError struct {
	URL string
}

func (e *NoTranscriptError) Error() string {
	return fmt.Sprintf("no transcript available for %s", e.URL)
}

// StoreUnavailableError wraps failures of the embedding service or the vector index.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("knowledge store unavailable (%s): %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// ModelError wraps failures of the hosted language model.
type ModelError struct {
	Stage string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("language model failed (%s): %v", e.Stage, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}
