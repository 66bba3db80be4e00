package app

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "time"

    yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to flags/env.
type FileConfig struct {
    Addr string `yaml:"addr" json:"addr"`

    Serper struct {
        URL     string `yaml:"url" json:"url"`
        Key     string `yaml:"key" json:"key"`
        UA      string `yaml:"ua" json:"ua"`
        Country string `yaml:"gl" json:"gl"`
        Lang    string `yaml:"hl" json:"hl"`
        Num     int    `yaml:"num" json:"num"`
        Retries int    `yaml:"retries" json:"retries"`
    } `yaml:"serper" json:"serper"`

    Search struct {
        Dir           string        `yaml:"dir" json:"dir"`
        Timeout       time.Duration `yaml:"timeout" json:"timeout"`
        MaxConcurrent int           `yaml:"maxConcurrent" json:"maxConcurrent"`
    } `yaml:"search" json:"search"`

    LLM struct {
        Provider     string `yaml:"provider" json:"provider"`
        GoogleAPIKey string `yaml:"googleKey" json:"googleKey"`
        BaseURL      string `yaml:"base" json:"base"`
        Model        string `yaml:"model" json:"model"`
        APIKey       string `yaml:"key" json:"key"`
    } `yaml:"llm" json:"llm"`

    Prompts struct {
        SynthSystemPrompt     string `yaml:"synthSystemPrompt" json:"synthSystemPrompt"`
        SynthSystemPromptFile string `yaml:"synthSystemPromptFile" json:"synthSystemPromptFile"`
    } `yaml:"prompts" json:"prompts"`

    Cache struct {
        Dir         string        `yaml:"dir" json:"dir"`
        MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
        Clear       bool          `yaml:"clear" json:"clear"`
        StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
        Only        bool          `yaml:"only" json:"only"`
    } `yaml:"cache" json:"cache"`

    Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    if fc.Prompts.SynthSystemPrompt == "" && fc.Prompts.SynthSystemPromptFile != "" {
        p := fc.Prompts.SynthSystemPromptFile
        if !filepath.IsAbs(p) {
            p = filepath.Join(filepath.Dir(path), p)
        }
        pb, err := os.ReadFile(p)
        if err != nil {
            return fc, fmt.Errorf("read synth prompt: %w", err)
        }
        fc.Prompts.SynthSystemPrompt = strings.TrimSpace(string(pb))
    }
    return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset or still at their flag default. Explicit flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil { return }

    if (cfg.Addr == "" || cfg.Addr == DefaultAddr) && fc.Addr != "" { cfg.Addr = fc.Addr }

    if cfg.SerperURL == "" && fc.Serper.URL != "" { cfg.SerperURL = fc.Serper.URL }
    if cfg.SerperKey == "" && fc.Serper.Key != "" { cfg.SerperKey = fc.Serper.Key }
    if (cfg.SerperUA == "" || cfg.SerperUA == DefaultUserAgent) && fc.Serper.UA != "" { cfg.SerperUA = fc.Serper.UA }
    if cfg.SerperCountry == "" && fc.Serper.Country != "" { cfg.SerperCountry = fc.Serper.Country }
    if cfg.SerperLang == "" && fc.Serper.Lang != "" { cfg.SerperLang = fc.Serper.Lang }
    if cfg.SerperNum == 0 && fc.Serper.Num > 0 { cfg.SerperNum = fc.Serper.Num }
    if cfg.SerperRetries == 0 && fc.Serper.Retries > 0 { cfg.SerperRetries = fc.Serper.Retries }

    if cfg.SearchDir == "" && fc.Search.Dir != "" { cfg.SearchDir = fc.Search.Dir }
    if (cfg.SearchTimeout == 0 || cfg.SearchTimeout == DefaultSearchTimeout) && fc.Search.Timeout > 0 { cfg.SearchTimeout = fc.Search.Timeout }
    if (cfg.MaxConcurrent == 0 || cfg.MaxConcurrent == DefaultMaxConcurrent) && fc.Search.MaxConcurrent > 0 { cfg.MaxConcurrent = fc.Search.MaxConcurrent }

    if cfg.LLMProvider == "" && fc.LLM.Provider != "" { cfg.LLMProvider = fc.LLM.Provider }
    if cfg.GoogleAPIKey == "" && fc.LLM.GoogleAPIKey != "" { cfg.GoogleAPIKey = fc.LLM.GoogleAPIKey }
    if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" { cfg.LLMBaseURL = fc.LLM.BaseURL }
    if cfg.LLMModel == "" && fc.LLM.Model != "" { cfg.LLMModel = fc.LLM.Model }
    if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" { cfg.LLMAPIKey = fc.LLM.APIKey }
    if cfg.SynthSystemPrompt == "" && fc.Prompts.SynthSystemPrompt != "" { cfg.SynthSystemPrompt = fc.Prompts.SynthSystemPrompt }

    if cfg.CacheDir == "" && fc.Cache.Dir != "" { cfg.CacheDir = fc.Cache.Dir }
    if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 { cfg.CacheMaxAge = fc.Cache.MaxAge }
    if !cfg.CacheClear && fc.Cache.Clear { cfg.CacheClear = true }
    if !cfg.CacheStrictPerms && fc.Cache.StrictPerms { cfg.CacheStrictPerms = true }
    if !cfg.CacheOnly && fc.Cache.Only { cfg.CacheOnly = true }

    if !cfg.Verbose && fc.Verbose { cfg.Verbose = true }
}

// ValidateConfig performs minimal schema validation. Missing API keys are
// not errors: the affected backend reports per request instead.
func ValidateConfig(cfg Config) error {
    switch strings.ToLower(trim(cfg.LLMProvider)) {
    case "", ProviderGemini, ProviderOpenAI:
    default:
        return fmt.Errorf("config: unknown llm.provider %q (want %s or %s)", cfg.LLMProvider, ProviderGemini, ProviderOpenAI)
    }
    if strings.EqualFold(trim(cfg.LLMProvider), ProviderOpenAI) && trim(cfg.LLMModel) == "" {
        return errors.New("config: llm.model is required for the openai provider (or set LLM_MODEL)")
    }
    if cfg.SerperNum < 0 || cfg.SerperRetries < 0 || cfg.MaxConcurrent < 0 {
        return errors.New("config: negative limits are not allowed")
    }
    if cfg.SearchTimeout < 0 || cfg.CacheMaxAge < 0 {
        return errors.New("config: negative durations are not allowed")
    }
    if cfg.CacheOnly && trim(cfg.CacheDir) == "" {
        return errors.New("config: cache.only requires cache.dir")
    }
    return nil
}

func trim(s string) string {
    return strings.TrimSpace(s)
}
