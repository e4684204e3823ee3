package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rag-chat-be/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/text-embedding-004:embedContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var req EmbeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, TaskRetrievalQuery, req.TaskType)
		assert.Equal(t, "hello", req.Content.Parts[0].Text)

		_, _ = w.Write([]byte(`{"embedding":{"values":[0.1,0.2,0.3]}}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("secret", "").(*GeminiProvider)
	p.BaseURL = srv.URL

	res, err := p.Generate(context.Background(), "hello", TaskRetrievalQuery)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, res.Embedding.Values)
}

func TestGeminiProvider_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`quota`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("k", "").(*GeminiProvider)
	p.BaseURL = srv.URL

	_, err := p.Generate(context.Background(), "hello", TaskRetrievalDocument)
	var statusErr *retry.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.True(t, statusErr.Retryable())
}

func TestOllamaProvider_NormalizesVector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		_, _ = w.Write([]byte(`{"embedding":[3,4]}`))
	}))
	defer srv.Close()

	res, err := NewOllamaProvider(srv.URL, "").Generate(context.Background(), "x", "")
	require.NoError(t, err)

	var norm float64
	for _, v := range res.Embedding.Values {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
	assert.InDelta(t, 0.6, res.Embedding.Values[0], 1e-6)
}

type flakyProvider struct {
	failures int
	calls    int
}

func (f *flakyProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, &retry.StatusError{Service: "fake", StatusCode: http.StatusBadGateway}
	}
	return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: []float32{1}}}, nil
}

func TestRetryingProvider(t *testing.T) {
	policy := retry.Policy{Attempts: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}

	inner := &flakyProvider{failures: 2}
	res, err := NewRetryingProvider(inner, policy).Generate(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, res.Embedding.Values)
	assert.Equal(t, 3, inner.calls)

	inner = &flakyProvider{failures: 5}
	_, err = NewRetryingProvider(inner, policy).Generate(context.Background(), "x", "")
	assert.Error(t, err)
	assert.Equal(t, 3, inner.calls)
}
