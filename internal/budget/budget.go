package budget

import (
    "math"
    "strings"
)

// EstimateTokensFromChars converts a character count into an estimated token
// count using a conservative heuristic (~4 chars per token in English). The
// result is always at least 1 when chars > 0.
func EstimateTokensFromChars(charCount int) int {
    if charCount <= 0 {
        return 0
    }
    return int(math.Ceil(float64(charCount) / 4.0))
}

// EstimateTokens returns the estimated token count of a string.
func EstimateTokens(s string) int {
    return EstimateTokensFromChars(len(s))
}

// EstimatePromptTokens estimates the total tokens of a chat prompt made of
// the given messages.
func EstimatePromptTokens(messages ...string) int {
    total := 0
    for _, m := range messages {
        total += EstimateTokens(m)
    }
    return total
}

// ModelContextTokens returns an estimated maximum context window for a given
// model name. Unknown models fall back to a conservative default.
func ModelContextTokens(modelName string) int {
    name := strings.ToLower(strings.TrimSpace(modelName))
    if name == "" {
        return 8192
    }
    // Strip a "models/" prefix used by the Gemini API.
    name = strings.TrimPrefix(name, "models/")
    if v, ok := knownModelMax[name]; ok {
        return v
    }
    switch {
    case strings.HasPrefix(name, "gemini-1.5"), strings.HasPrefix(name, "gemini-2"):
        return 1_000_000
    case strings.HasSuffix(name, "1m"):
        return 1_000_000
    case strings.HasSuffix(name, "200k"):
        return 200_000
    case strings.HasSuffix(name, "128k"), strings.Contains(name, "-mini"):
        return 128_000
    }
    return 8192
}

// Fits reports whether a prompt of promptTokens plus reservedForOutput fits
// in the model's context window.
func Fits(modelName string, reservedForOutput int, promptTokens int) bool {
    if reservedForOutput < 0 {
        reservedForOutput = 0
    }
    return promptTokens+reservedForOutput <= ModelContextTokens(modelName)
}

// knownModelMax contains rough context sizes for common model identifiers.
// These are best-effort and do not need to be exhaustive.
var knownModelMax = map[string]int{
    "gemini-pro":    32_768,
    "gemini-1.0-pro": 32_768,

    "gpt-4o":        128_000,
    "gpt-4o-mini":   128_000,
    "gpt-4-turbo":   128_000,
    "gpt-3.5-turbo": 16_384,

    "llama-3":   8_192,
    "llama-3.1": 128_000,
}
