package factory

import (
	"fmt"

	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/llm/gemini"
	"rag-chat-be/pkg/llm/huggingface"
	"rag-chat-be/pkg/llm/ollama"
	"rag-chat-be/pkg/llm/openai"
)

// NewLLMProvider builds the chat backend named by providerType.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api key")
		}
		p := gemini.NewGeminiProvider(apiKey, modelName)
		if baseURL != "" {
			p.BaseURL = baseURL
		}
		return p, nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName), nil
	case "openai":
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
