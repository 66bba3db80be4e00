package app

import "time"

// LLM provider names accepted by Config.LLMProvider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Defaults applied by flags and honored by file config overlays.
const (
	DefaultAddr          = ":8501"
	DefaultSearchTimeout = 30 * time.Second
	DefaultMaxConcurrent = 5
	DefaultUserAgent     = "goanswer/1.0 (+https://github.com/hyperifyio/goanswer)"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Server
	Addr string

	// Search
	SerperURL     string
	SerperKey     string
	SerperUA      string
	SerperCountry string
	SerperLang    string
	SerperNum     int
	SerperRetries int
	SearchDir     string // offline fixtures; replaces Serper when set
	SearchTimeout time.Duration
	MaxConcurrent int

	// LLM
	LLMProvider       string
	GoogleAPIKey      string
	LLMBaseURL        string
	LLMModel          string
	LLMAPIKey         string
	SynthSystemPrompt string

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool
	CacheOnly        bool // serve searches from the cache only; misses are empty

	// Behavior
	Verbose bool
}
