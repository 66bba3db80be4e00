package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/goanswer/internal/cache"
	"github.com/hyperifyio/goanswer/internal/llm"
	"github.com/hyperifyio/goanswer/internal/results"
	"github.com/hyperifyio/goanswer/internal/search"
	"github.com/hyperifyio/goanswer/internal/synth"
)

// ErrEmptyQuery is returned for a blank query; no backend is called.
var ErrEmptyQuery = errors.New("please enter a search query")

// ErrAnswer wraps any failure to produce the AI answer. The page is not
// rendered when it occurs.
var ErrAnswer = errors.New("answer generation failed")

// Request is one search submission.
type Request struct {
	Query    string
	Sections results.Sections
}

type App struct {
	cfg         Config
	search      search.Provider
	synth       *synth.Synthesizer
	provider    string
	model       string
	searchCache *cache.SearchCache
	llmCache    *cache.LLMCache
}

func New(ctx context.Context, cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = DefaultSearchTimeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	if strings.TrimSpace(cfg.LLMProvider) == "" {
		cfg.LLMProvider = ProviderGemini
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))

	a := &App{cfg: cfg}

	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		searchDir := filepath.Join(cfg.CacheDir, "search")
		llmDir := filepath.Join(cfg.CacheDir, "llm")
		if cfg.CacheMaxAge > 0 {
			// Purging is best-effort; stale entries also expire on read.
			if n, err := cache.PurgeSearchCacheByAge(searchDir, cfg.CacheMaxAge); err == nil && n > 0 {
				log.Info().Int("removed", n).Msg("purged search cache")
			}
			if n, err := cache.PurgeLLMCacheByAge(llmDir, cfg.CacheMaxAge); err == nil && n > 0 {
				log.Info().Int("removed", n).Msg("purged llm cache")
			}
		}
		a.searchCache = &cache.SearchCache{
			Dir:         searchDir,
			Scope:       searchScope(cfg),
			MaxAge:      cfg.CacheMaxAge,
			StrictPerms: cfg.CacheStrictPerms,
		}
		a.llmCache = &cache.LLMCache{Dir: llmDir, MaxAge: cfg.CacheMaxAge, StrictPerms: cfg.CacheStrictPerms}
	}

	a.search = a.buildSearch()
	client, model := a.buildLLM(ctx)
	a.provider, a.model = cfg.LLMProvider, model
	a.synth = &synth.Synthesizer{Client: client, Cache: a.llmCache, SystemPrompt: cfg.SynthSystemPrompt}

	log.Info().
		Str("search", a.search.Name()).
		Str("llm", a.provider).
		Str("model", a.model).
		Bool("cache", cfg.CacheDir != "").
		Msg("goanswer ready")
	return a, nil
}

func (a *App) buildSearch() search.Provider {
	var p search.Provider
	if a.cfg.SearchDir != "" {
		p = &search.FileProvider{Dir: a.cfg.SearchDir}
	} else {
		if strings.TrimSpace(a.cfg.SerperKey) == "" {
			log.Warn().Msg("SERPER_API_KEY is not set; search requests will be rejected")
		}
		ua := a.cfg.SerperUA
		if ua == "" {
			ua = DefaultUserAgent
		}
		p = &search.Serper{
			BaseURL:    a.cfg.SerperURL,
			APIKey:     a.cfg.SerperKey,
			HTTPClient: newSearchHTTPClient(a.cfg.SearchTimeout),
			UserAgent:  ua,
			Country:    a.cfg.SerperCountry,
			Language:   a.cfg.SerperLang,
			Num:        a.cfg.SerperNum,
			RetryMax:   a.cfg.SerperRetries,
		}
	}
	if a.searchCache != nil {
		p = &search.CachedProvider{Inner: p, Cache: a.searchCache, CacheOnly: a.cfg.CacheOnly}
	}
	return p
}

// searchScope lists the request parameters that change a search response so
// cached bodies for one locale or result count are not served for another.
func searchScope(cfg Config) string {
	return fmt.Sprintf("gl=%s;hl=%s;num=%d", cfg.SerperCountry, cfg.SerperLang, cfg.SerperNum)
}

// buildLLM never fails: a backend that cannot be constructed is replaced by
// llm.Unavailable so the error shows up on the first answer request.
func (a *App) buildLLM(ctx context.Context) (llm.Client, string) {
	switch a.cfg.LLMProvider {
	case ProviderOpenAI:
		transportCfg := openai.DefaultConfig(a.cfg.LLMAPIKey)
		if a.cfg.LLMBaseURL != "" {
			transportCfg.BaseURL = a.cfg.LLMBaseURL
		}
		transportCfg.HTTPClient = newSearchHTTPClient(60 * time.Second)
		client := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}
		preflight(ctx, client)
		return client, a.cfg.LLMModel
	default:
		model := a.cfg.LLMModel
		if model == "" {
			model = llm.DefaultGeminiModel
		}
		if strings.TrimSpace(a.cfg.GoogleAPIKey) == "" {
			log.Warn().Msg("GOOGLE_API_KEY is not set; answers will fail")
			return llm.Unavailable{Err: fmt.Errorf("%w: GOOGLE_API_KEY is not set", llm.ErrNotConfigured)}, model
		}
		client, err := llm.NewGeminiProvider(ctx, a.cfg.GoogleAPIKey, a.cfg.LLMBaseURL, newSearchHTTPClient(60*time.Second))
		if err != nil {
			log.Warn().Err(err).Msg("gemini client unavailable")
			return llm.Unavailable{Err: fmt.Errorf("%w: %v", llm.ErrNotConfigured, err)}, model
		}
		return client, model
	}
}

// preflight lists models as a quick connectivity check. Failures are only
// reported; the answer call surfaces them per request.
func preflight(ctx context.Context, c llm.Client) {
	ml, ok := c.(llm.ModelLister)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := ml.ListModels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("LLM model list failed; continuing")
		return
	}
	if len(models.Models) == 0 {
		log.Warn().Msg("LLM returned zero models")
		return
	}
	log.Debug().Int("count", len(models.Models)).Msg("LLM models available")
}

func (a *App) Close() {
	// nothing yet
}

// Search runs the enabled verticals concurrently, builds the page sections
// and asks the model for the answer. A vertical that fails contributes no
// data; only a failed answer fails the whole request.
func (a *App) Search(ctx context.Context, req Request) (*results.Page, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	start := time.Now()
	payloads := a.fetch(ctx, query, req.Sections)
	page := results.Build(query, req.Sections, payloads)

	answer, err := a.synth.Answer(ctx, synth.Input{
		Query:   query,
		Results: results.PromptEntries(payloads.Web),
		Model:   a.model,
	})
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("answer failed")
		return nil, fmt.Errorf("%w: %w", ErrAnswer, err)
	}
	page.Answer = answer
	log.Info().
		Str("query", query).
		Int("sources", len(page.Sources)).
		Dur("took", time.Since(start)).
		Msg("search complete")
	return page, nil
}

// fetch queries every enabled vertical once. Each goroutine owns its slot in
// bodies, so no locking is needed.
func (a *App) fetch(ctx context.Context, query string, sections results.Sections) results.Payloads {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.SearchTimeout)
	defer cancel()

	verticals := enabledVerticals(sections)
	bodies := make([][]byte, len(verticals))
	var g errgroup.Group
	g.SetLimit(a.cfg.MaxConcurrent)
	for i, v := range verticals {
		g.Go(func() error {
			resp, err := a.search.Search(ctx, v, query)
			if err != nil {
				log.Warn().Err(err).Str("vertical", string(v)).Str("query", query).Msg("search failed")
				return nil
			}
			log.Debug().Str("vertical", string(v)).Str("source", resp.Source).Int("bytes", len(resp.Body)).Msg("search ok")
			bodies[i] = resp.Body
			return nil
		})
	}
	_ = g.Wait()

	var p results.Payloads
	for i, v := range verticals {
		switch v {
		case search.VerticalWeb:
			p.Web = bodies[i]
		case search.VerticalMaps:
			p.Maps = bodies[i]
		case search.VerticalImages:
			p.Images = bodies[i]
		case search.VerticalVideos:
			p.Videos = bodies[i]
		case search.VerticalShopping:
			p.Shopping = bodies[i]
		}
	}
	return p
}

// enabledVerticals lists web first, then the enabled optional verticals in
// display order.
func enabledVerticals(s results.Sections) []search.Vertical {
	var out []search.Vertical
	for _, v := range search.Verticals {
		on := true
		switch v {
		case search.VerticalMaps:
			on = s.Maps
		case search.VerticalImages:
			on = s.Images
		case search.VerticalVideos:
			on = s.Videos
		case search.VerticalShopping:
			on = s.Shopping
		}
		if on {
			out = append(out, v)
		}
	}
	return out
}

// Markdown renders the page as Markdown with the run footer appended.
func (a *App) Markdown(page *results.Page) string {
	return appendRunFooter(page.Markdown(), runInfo{
		Search:      a.search.Name(),
		Provider:    a.provider,
		Model:       a.model,
		Sources:     len(page.Sources),
		SearchCache: a.searchCache != nil,
		LLMCache:    a.llmCache != nil,
	})
}

// WritePDF writes the page as a PDF document to w.
func (a *App) WritePDF(w io.Writer, page *results.Page) error {
	return WritePDF(w, page.Query, a.Markdown(page))
}
