package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/retry"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"

	roleUser  = "user"
	roleModel = "model"
)

type GeminiChatParts struct {
	Text string `json:"text"`
}

type GeminiChatContent struct {
	Parts []*GeminiChatParts `json:"parts"`
	Role  string             `json:"role,omitempty"`
}

type GeminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type GeminiChatRequest struct {
	SystemInstruction *GeminiChatContent      `json:"systemInstruction,omitempty"`
	Contents          []*GeminiChatContent    `json:"contents"`
	GenerationConfig  *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiChatCandidate struct {
	Content      *GeminiChatContent `json:"content"`
	FinishReason string             `json:"finishReason"`
}

type GeminiChatResponse struct {
	Candidates []*GeminiChatCandidate `json:"candidates"`
}

type GeminiProvider struct {
	ApiKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiProvider{
		ApiKey:  apiKey,
		Model:   model,
		BaseURL: DefaultBaseURL,
		Client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Chat maps the history onto generateContent. System messages are merged into
// systemInstruction and assistant turns are sent with the "model" role.
func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Model: g.Model, Temperature: -1}, opts...)

	payload := GeminiChatRequest{}
	var system []string
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, msg.Content)
		case llm.RoleAssistant, roleModel:
			payload.Contents = append(payload.Contents, &GeminiChatContent{
				Parts: []*GeminiChatParts{{Text: msg.Content}},
				Role:  roleModel,
			})
		default:
			payload.Contents = append(payload.Contents, &GeminiChatContent{
				Parts: []*GeminiChatParts{{Text: msg.Content}},
				Role:  roleUser,
			})
		}
	}
	if len(system) > 0 {
		payload.SystemInstruction = &GeminiChatContent{
			Parts: []*GeminiChatParts{{Text: strings.Join(system, "\n\n")}},
		}
	}
	if options.Temperature >= 0 || options.MaxTokens > 0 {
		cfg := &GeminiGenerationConfig{MaxOutputTokens: options.MaxTokens}
		if options.Temperature >= 0 {
			t := options.Temperature
			cfg.Temperature = &t
		}
		payload.GenerationConfig = cfg
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.BaseURL, options.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", g.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", &retry.StatusError{Service: "gemini", StatusCode: res.StatusCode, Body: string(resBody)}
	}

	var geminiRes GeminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var b strings.Builder
	for _, part := range geminiRes.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
