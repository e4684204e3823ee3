package factory

import (
	"testing"

	"rag-chat-be/pkg/llm/gemini"
	"rag-chat-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider("gemini", "", "", "key")
	require.NoError(t, err)
	g, ok := p.(*gemini.GeminiProvider)
	require.True(t, ok)
	assert.Equal(t, gemini.DefaultModel, g.Model)

	p, err = NewLLMProvider("ollama", "llama3", "", "")
	require.NoError(t, err)
	o, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", o.BaseURL)

	_, err = NewLLMProvider("gemini", "", "", "")
	assert.Error(t, err)

	_, err = NewLLMProvider("nope", "", "", "")
	assert.Error(t, err)
}
