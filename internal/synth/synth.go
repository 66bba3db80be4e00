package synth

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "strings"

    "github.com/rs/zerolog/log"
    openai "github.com/sashabaranov/go-openai"

    "github.com/hyperifyio/goanswer/internal/budget"
    "github.com/hyperifyio/goanswer/internal/cache"
    "github.com/hyperifyio/goanswer/internal/extract"
    "github.com/hyperifyio/goanswer/internal/llm"
    "github.com/hyperifyio/goanswer/internal/results"
)

// DefaultSystemPrompt gives the model its assistant persona.
const DefaultSystemPrompt = "You are Perplexity Assistant, a helpful search assistant. Use markdown to format your answers."

// reservedOutputTokens is kept free in the context window for the answer.
const reservedOutputTokens = 2048

// Input bundles everything needed to answer one query.
type Input struct {
    Query   string
    Results []results.PromptEntry
    Model   string
}

// Synthesizer asks the model for a prose answer grounded in web results.
type Synthesizer struct {
    Client llm.Client
    Cache  *cache.LLMCache
    // SystemPrompt, when non-empty, overrides DefaultSystemPrompt.
    SystemPrompt string
    Temperature  float32
}

// ErrNoAnswer indicates the model produced no usable text.
var ErrNoAnswer = errors.New("no answer from model")

// Answer returns the model's Markdown answer for the query.
func (s *Synthesizer) Answer(ctx context.Context, in Input) (string, error) {
    if s == nil || s.Client == nil {
        return "", errors.New("synthesizer not configured")
    }
    system := DefaultSystemPrompt
    if strings.TrimSpace(s.SystemPrompt) != "" {
        system = s.SystemPrompt
    }
    user := BuildPrompt(in.Query, in.Results)

    tokens := budget.EstimatePromptTokens(system, user)
    if !budget.Fits(in.Model, reservedOutputTokens, tokens) {
        log.Warn().Int("prompt_tokens", tokens).Str("model", in.Model).Msg("prompt may exceed model context")
    } else {
        log.Debug().Int("prompt_tokens", tokens).Str("model", in.Model).Msg("answer prompt built")
    }

    key := cache.KeyFrom(in.Model, system+"\n\n"+user)
    if s.Cache != nil {
        if raw, ok, _ := s.Cache.Get(ctx, key); ok {
            var out struct{ Answer string `json:"answer"` }
            if err := json.Unmarshal(raw, &out); err == nil && strings.TrimSpace(out.Answer) != "" {
                return out.Answer, nil
            }
        }
    }

    req := openai.ChatCompletionRequest{
        Model: in.Model,
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleSystem, Content: system},
            {Role: openai.ChatMessageRoleUser, Content: user},
        },
        Temperature: s.Temperature,
        N:           1,
    }
    resp, err := s.Client.CreateChatCompletion(ctx, req)
    if err != nil {
        return "", fmt.Errorf("answer call: %w", err)
    }
    if len(resp.Choices) == 0 {
        return "", ErrNoAnswer
    }
    out := strings.TrimSpace(resp.Choices[0].Message.Content)
    if out == "" {
        return "", ErrNoAnswer
    }
    if s.Cache != nil {
        payload, _ := json.Marshal(map[string]string{"answer": out})
        _ = s.Cache.Save(ctx, key, payload)
    }
    return out, nil
}

// BuildPrompt embeds the web results in the answer instructions. Each
// result is a Title/Link/Snippet block followed by a blank line.
func BuildPrompt(query string, entries []results.PromptEntry) string {
    var sr strings.Builder
    for _, e := range entries {
        sr.WriteString("Title: ")
        sr.WriteString(extract.PlainText(e.Title))
        sr.WriteString("\nLink: ")
        sr.WriteString(e.Link)
        sr.WriteString("\nSnippet: ")
        sr.WriteString(extract.PlainText(e.Snippet))
        sr.WriteString("\n\n")
    }

    var sb strings.Builder
    fmt.Fprintf(&sb, "Based on the following search results and your knowledge, provide a comprehensive answer to the query: \"%s\"\n\n", query)
    sb.WriteString("Search Results:\n")
    sb.WriteString(sr.String())
    sb.WriteString("\nProvide a detailed, well-structured response that synthesizes information from the search results.\n")
    sb.WriteString("Include relevant facts, examples, and explanations.\n")
    return sb.String()
}
