package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// DefaultGeminiModel is the hosted model used when none is configured.
const DefaultGeminiModel = "gemini-2.0-flash-exp"

// GeminiProvider adapts the Gemini API to Client. System messages become the
// system instruction; user and assistant turns become contents.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a Gemini client. baseURL is optional and routes
// requests to a proxy or test server.
func NewGeminiProvider(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) (*GeminiProvider, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

func (g *GeminiProvider) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	model := req.Model
	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}
	contents, config := toGemini(req)
	if len(contents) == 0 {
		return openai.ChatCompletionResponse{}, errors.New("gemini: no user content")
	}
	resp, err := g.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return openai.ChatCompletionResponse{}, fmt.Errorf("gemini generate: %w", err)
	}
	out := openai.ChatCompletionResponse{
		Object: "chat.completion",
		Model:  model,
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: resp.Text(),
			},
			FinishReason: openai.FinishReasonStop,
		}},
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = openai.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out, nil
}

// toGemini converts chat messages and sampling settings. Multiple system
// messages are joined into one instruction.
func toGemini(req openai.ChatCompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{}
	var system []string
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case openai.ChatMessageRoleSystem:
			system = append(system, m.Content)
		case openai.ChatMessageRoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		config.Temperature = &temp
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	return contents, config
}
