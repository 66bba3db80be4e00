package llm

import (
    "context"
    "errors"

    openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface needed by core logic to call a chat model.
// It mirrors the go-openai CreateChatCompletion method so that any
// OpenAI-compatible or hosted backend can be adapted to it.
type Client interface {
    CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ModelLister is an optional capability that allows listing available models.
// Providers that do not support this can omit it; callers should use a type
// assertion to detect availability.
type ModelLister interface {
    ListModels(ctx context.Context) (openai.ModelsList, error)
}

// OpenAIProvider adapts *openai.Client to the Client/ModelLister interfaces.
type OpenAIProvider struct {
    Inner *openai.Client
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
    return p.Inner.CreateChatCompletion(ctx, request)
}

func (p *OpenAIProvider) ListModels(ctx context.Context) (openai.ModelsList, error) {
    return p.Inner.ListModels(ctx)
}

// ErrNotConfigured is wrapped by Unavailable when a backend could not be built.
var ErrNotConfigured = errors.New("llm backend not configured")

// Unavailable is a Client whose every call fails with Err. It stands in for
// a backend that could not be constructed so the failure surfaces per request.
type Unavailable struct {
    Err error
}

func (u Unavailable) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
    if u.Err == nil {
        return openai.ChatCompletionResponse{}, ErrNotConfigured
    }
    return openai.ChatCompletionResponse{}, u.Err
}
