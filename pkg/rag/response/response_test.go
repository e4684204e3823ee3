package response

import (
	"context"
	"errors"
	"testing"

	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGreeting(t *testing.T) {
	for _, q := range []string{"hi", "HI", " Hello ", "hey", "hy", "hii"} {
		assert.True(t, IsGreeting(q), q)
	}
	for _, q := range []string{"hi there", "hello?", "", "what is X?"} {
		assert.False(t, IsGreeting(q), q)
	}
}

func TestReplies(t *testing.T) {
	assert.Equal(t, `Successfully processed "Fruit Facts". You can now ask questions about it.`, VideoIngested("Fruit Facts"))
	assert.Equal(t, `Successfully processed "notes.pdf".`, PDFIngested("notes.pdf"))
}

type echoLLM struct {
	err  error
	seen []llm.Message
}

func (e *echoLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	e.seen = history
	if e.err != nil {
		return "", e.err
	}
	return " X is a fruit. \n", nil
}

func (e *echoLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return e.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func TestGenerator_GenerateFromContext(t *testing.T) {
	stub := &echoLLM{}
	out, err := NewGenerator(stub).GenerateFromContext(context.Background(), "definition of X", "X is a fruit.", nil)
	require.NoError(t, err)
	assert.Equal(t, "X is a fruit.", out)

	require.Len(t, stub.seen, 2)
	assert.Equal(t, llm.RoleSystem, stub.seen[0].Role)
	assert.Contains(t, stub.seen[1].Content, "Context:\nX is a fruit.")

	_, err = NewGenerator(&echoLLM{err: errors.New("quota")}).GenerateFromContext(context.Background(), "q", "c", nil)
	var modelErr *rag.ModelError
	require.True(t, errors.As(err, &modelErr))
	assert.Equal(t, "answer", modelErr.Stage)
}
