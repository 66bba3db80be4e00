package app

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
    if cfg == nil { return }

    setString := func(dst *string, keys ...string) {
        if *dst != "" { return }
        for _, k := range keys {
            if v := os.Getenv(k); v != "" {
                *dst = v
                return
            }
        }
    }
    setString(&cfg.Addr, "ADDR")
    setString(&cfg.SerperKey, "SERPER_API_KEY")
    setString(&cfg.SerperURL, "SERPER_URL")
    setString(&cfg.SerperCountry, "SERPER_GL")
    setString(&cfg.SerperLang, "SERPER_HL")
    setString(&cfg.SearchDir, "SEARCH_DIR")
    setString(&cfg.LLMProvider, "LLM_PROVIDER")
    setString(&cfg.GoogleAPIKey, "GOOGLE_API_KEY", "GEMINI_API_KEY")
    setString(&cfg.LLMBaseURL, "LLM_BASE_URL")
    setString(&cfg.LLMModel, "LLM_MODEL")
    setString(&cfg.LLMAPIKey, "LLM_API_KEY")
    setString(&cfg.SynthSystemPrompt, "SYNTH_SYSTEM_PROMPT")
    setString(&cfg.CacheDir, "CACHE_DIR")

    setInt := func(dst *int, key string) {
        if *dst != 0 { return }
        if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil && n > 0 {
            *dst = n
        }
    }
    setInt(&cfg.SerperNum, "SERPER_NUM")
    setInt(&cfg.SerperRetries, "SERPER_RETRIES")
    setInt(&cfg.MaxConcurrent, "SEARCH_MAX_CONCURRENT")

    setDuration := func(dst *time.Duration, key string) {
        if *dst != 0 { return }
        if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key))); err == nil {
            *dst = d
        }
    }
    setDuration(&cfg.SearchTimeout, "SEARCH_TIMEOUT")
    setDuration(&cfg.CacheMaxAge, "CACHE_MAX_AGE")

    setBool := func(dst *bool, envKey string) {
        if *dst { return }
        if parseBool(os.Getenv(envKey)) == 1 {
            *dst = true
        }
    }
    setBool(&cfg.Verbose, "VERBOSE")
    setBool(&cfg.CacheClear, "CACHE_CLEAR")
    setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
    setBool(&cfg.CacheOnly, "CACHE_ONLY")
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when the corresponding env vars are set. This lets env take precedence over
// values coming from a config file while flags remain highest precedence.
func ApplyEnvOverrides(cfg *Config) {
    if cfg == nil { return }

    if v := os.Getenv("ADDR"); v != "" { cfg.Addr = v }
    if v := os.Getenv("SERPER_API_KEY"); v != "" { cfg.SerperKey = v }
    if v := os.Getenv("SERPER_URL"); v != "" { cfg.SerperURL = v }
    if v := os.Getenv("SERPER_GL"); v != "" { cfg.SerperCountry = v }
    if v := os.Getenv("SERPER_HL"); v != "" { cfg.SerperLang = v }
    if v := os.Getenv("SEARCH_DIR"); v != "" { cfg.SearchDir = v }
    if v := os.Getenv("LLM_PROVIDER"); v != "" { cfg.LLMProvider = v }
    if v := os.Getenv("GEMINI_API_KEY"); v != "" { cfg.GoogleAPIKey = v }
    if v := os.Getenv("GOOGLE_API_KEY"); v != "" { cfg.GoogleAPIKey = v }
    if v := os.Getenv("LLM_BASE_URL"); v != "" { cfg.LLMBaseURL = v }
    if v := os.Getenv("LLM_MODEL"); v != "" { cfg.LLMModel = v }
    if v := os.Getenv("LLM_API_KEY"); v != "" { cfg.LLMAPIKey = v }
    if v := os.Getenv("SYNTH_SYSTEM_PROMPT"); v != "" { cfg.SynthSystemPrompt = v }
    if v := os.Getenv("CACHE_DIR"); v != "" { cfg.CacheDir = v }

    if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SERPER_NUM"))); err == nil && n > 0 { cfg.SerperNum = n }
    if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SERPER_RETRIES"))); err == nil && n >= 0 { cfg.SerperRetries = n }
    if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SEARCH_MAX_CONCURRENT"))); err == nil && n > 0 { cfg.MaxConcurrent = n }
    if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("SEARCH_TIMEOUT"))); err == nil { cfg.SearchTimeout = d }
    if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("CACHE_MAX_AGE"))); err == nil { cfg.CacheMaxAge = d }

    // Booleans override when env present and truthy/falsey
    setBool := func(dst *bool, envKey string) {
        switch parseBool(os.Getenv(envKey)) {
        case 1:
            *dst = true
        case -1:
            *dst = false
        }
    }
    setBool(&cfg.Verbose, "VERBOSE")
    setBool(&cfg.CacheClear, "CACHE_CLEAR")
    setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
    setBool(&cfg.CacheOnly, "CACHE_ONLY")
}

// parseBool returns 1 for truthy, -1 for falsey and 0 for unset or unknown.
func parseBool(s string) int {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "1", "true", "yes", "on":
        return 1
    case "0", "false", "no", "off":
        return -1
    }
    return 0
}
