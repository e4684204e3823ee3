package embedding

import (
	"context"
	"errors"
	"fmt"

	"rag-chat-be/pkg/retry"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider uses any OpenAI-compatible embeddings endpoint.
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	dimensions int
}

func NewOpenAIProvider(apiKey, baseURL, model string, dimensions int) EmbeddingProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIProvider{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		dimensions: dimensions,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(p.model),
		Dimensions: p.dimensions,
	})
	if err != nil {
		return nil, AsStatusError("openai embedding", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embeddings from openai")
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: resp.Data[0].Embedding,
		},
	}, nil
}

// AsStatusError lifts go-openai HTTP failures into retry.StatusError so the
// retry policy can tell rate limits from bad requests.
func AsStatusError(service string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &retry.StatusError{Service: service, StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &retry.StatusError{Service: service, StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}
	return err
}
