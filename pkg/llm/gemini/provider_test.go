package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProvider_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))

		var req GeminiChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "be brief", req.SystemInstruction.Parts[0].Text)
		require.Len(t, req.Contents, 3)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "model", req.Contents[1].Role)
		assert.Equal(t, "user", req.Contents[2].Role)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hel"},{"text":"lo"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("k", "")
	p.BaseURL = srv.URL

	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "be brief"},
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "hello"},
		{Role: llm.RoleUser, Content: "again"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestGeminiProvider_Errors(t *testing.T) {
	status := http.StatusBadRequest
	body := `bad`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	p := NewGeminiProvider("k", "")
	p.BaseURL = srv.URL

	_, err := p.Generate(context.Background(), "x")
	var statusErr *retry.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.False(t, statusErr.Retryable())

	status = http.StatusOK
	body = `{"candidates":[]}`
	_, err = p.Generate(context.Background(), "x")
	assert.Error(t, err)
}
