package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goanswer/internal/app"
	"github.com/hyperifyio/goanswer/internal/results"
	"github.com/hyperifyio/goanswer/internal/search"
	"github.com/hyperifyio/goanswer/internal/web"
)

// options holds the flag values. cfg fields only take effect for flags that
// were set explicitly, so env and file config can fill the rest.
type options struct {
	cfg        app.Config
	configPath string
	envFiles   string
	query      string
	output     string
	pdfPath    string
	sections   string
	version    bool
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run returns the process exit code: 0 on success, 2 on any failure.
func run(args []string, stdout io.Writer) int {
	opts, set, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.version {
		fmt.Fprintln(stdout, app.VersionString())
		return 0
	}
	cfg, err := loadConfig(opts, set)
	if err != nil {
		log.Error().Err(err).Msg("config")
		return 2
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("init app")
		return 2
	}
	defer a.Close()

	if strings.TrimSpace(opts.query) != "" {
		if err := oneShot(ctx, a, opts, stdout); err != nil {
			log.Error().Err(err).Msg("search failed")
			return 2
		}
		return 0
	}
	if err := serve(ctx, a, cfg); err != nil {
		log.Error().Err(err).Msg("server failed")
		return 2
	}
	return 0
}

func parseFlags(args []string) (*options, map[string]bool, error) {
	o := &options{}
	c := &o.cfg
	fs := flag.NewFlagSet("goanswer", flag.ContinueOnError)
	fs.BoolVar(&o.version, "version", false, "Print version and exit")
	fs.StringVar(&o.configPath, "config", "", "Path to YAML or JSON config file")
	fs.StringVar(&o.envFiles, "env", ".env", "Comma-separated dotenv files to load")
	fs.StringVar(&o.query, "query", "", "Run one search, write the result and exit")
	fs.StringVar(&o.output, "output", "-", "Markdown output path for -query ('-' for stdout)")
	fs.StringVar(&o.pdfPath, "pdf", "", "Also write a PDF export for -query")
	fs.StringVar(&o.sections, "sections", "", "Comma-separated optional sections for -query: maps,images,videos,shopping")

	fs.StringVar(&c.Addr, "addr", app.DefaultAddr, "Listen address for the web UI")
	fs.StringVar(&c.SerperURL, "serper.url", "", "Serper API base URL")
	fs.StringVar(&c.SerperKey, "serper.key", "", "Serper API key")
	fs.StringVar(&c.SerperUA, "serper.ua", app.DefaultUserAgent, "User-Agent for search requests")
	fs.StringVar(&c.SerperCountry, "serper.gl", "", "Optional country code forwarded as gl")
	fs.StringVar(&c.SerperLang, "serper.hl", "", "Optional language code forwarded as hl")
	fs.IntVar(&c.SerperNum, "serper.num", 0, "Optional result count per vertical (0 uses the API default)")
	fs.IntVar(&c.SerperRetries, "serper.retries", 0, "Retries on transient search failures")
	fs.StringVar(&c.SearchDir, "search.dir", "", "Directory of <vertical>.json fixtures used instead of the API")
	fs.DurationVar(&c.SearchTimeout, "search.timeout", app.DefaultSearchTimeout, "Deadline for all search calls of one query")
	fs.IntVar(&c.MaxConcurrent, "search.maxConcurrent", app.DefaultMaxConcurrent, "Maximum concurrent vertical calls")
	fs.StringVar(&c.LLMProvider, "llm.provider", "", "LLM backend: gemini (default) or openai")
	fs.StringVar(&c.GoogleAPIKey, "google.key", "", "Google API key for Gemini")
	fs.StringVar(&c.LLMBaseURL, "llm.base", "", "Base URL of the LLM API")
	fs.StringVar(&c.LLMModel, "llm.model", "", "Model name")
	fs.StringVar(&c.LLMAPIKey, "llm.key", "", "API key for an OpenAI-compatible server")
	fs.StringVar(&c.SynthSystemPrompt, "synth.systemPrompt", "", "Override the answer system prompt")
	fs.StringVar(&c.CacheDir, "cache.dir", "", "Cache directory; empty disables caching")
	fs.DurationVar(&c.CacheMaxAge, "cache.maxAge", 0, "Max age for cache entries (e.g. 24h); 0 disables")
	fs.BoolVar(&c.CacheClear, "cache.clear", false, "Clear the cache directory at startup")
	fs.BoolVar(&c.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.BoolVar(&c.CacheOnly, "cache.only", false, "Serve searches from the cache only; never call the search API")
	fs.BoolVar(&c.Verbose, "v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

// loadConfig resolves precedence: flags > env > config file > defaults.
func loadConfig(o *options, set map[string]bool) (app.Config, error) {
	if err := app.LoadEnvFiles(strings.Split(o.envFiles, ",")...); err != nil {
		return app.Config{}, fmt.Errorf("load env: %w", err)
	}
	var cfg app.Config
	if o.configPath != "" {
		fc, err := app.LoadConfigFile(o.configPath)
		if err != nil {
			return app.Config{}, fmt.Errorf("load config %s: %w", o.configPath, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	f := o.cfg
	overlay := map[string]func(){
		"addr":                 func() { cfg.Addr = f.Addr },
		"serper.url":           func() { cfg.SerperURL = f.SerperURL },
		"serper.key":           func() { cfg.SerperKey = f.SerperKey },
		"serper.ua":            func() { cfg.SerperUA = f.SerperUA },
		"serper.gl":            func() { cfg.SerperCountry = f.SerperCountry },
		"serper.hl":            func() { cfg.SerperLang = f.SerperLang },
		"serper.num":           func() { cfg.SerperNum = f.SerperNum },
		"serper.retries":       func() { cfg.SerperRetries = f.SerperRetries },
		"search.dir":           func() { cfg.SearchDir = f.SearchDir },
		"search.timeout":       func() { cfg.SearchTimeout = f.SearchTimeout },
		"search.maxConcurrent": func() { cfg.MaxConcurrent = f.MaxConcurrent },
		"llm.provider":         func() { cfg.LLMProvider = f.LLMProvider },
		"google.key":           func() { cfg.GoogleAPIKey = f.GoogleAPIKey },
		"llm.base":             func() { cfg.LLMBaseURL = f.LLMBaseURL },
		"llm.model":            func() { cfg.LLMModel = f.LLMModel },
		"llm.key":              func() { cfg.LLMAPIKey = f.LLMAPIKey },
		"synth.systemPrompt":   func() { cfg.SynthSystemPrompt = f.SynthSystemPrompt },
		"cache.dir":            func() { cfg.CacheDir = f.CacheDir },
		"cache.maxAge":         func() { cfg.CacheMaxAge = f.CacheMaxAge },
		"cache.clear":          func() { cfg.CacheClear = f.CacheClear },
		"cache.strictPerms":    func() { cfg.CacheStrictPerms = f.CacheStrictPerms },
		"cache.only":           func() { cfg.CacheOnly = f.CacheOnly },
		"v":                    func() { cfg.Verbose = f.Verbose },
	}
	for name := range set {
		if apply, ok := overlay[name]; ok {
			apply()
		}
	}

	if cfg.Addr == "" {
		cfg.Addr = app.DefaultAddr
	}
	if cfg.SerperUA == "" {
		cfg.SerperUA = app.DefaultUserAgent
	}
	if cfg.SearchTimeout == 0 {
		cfg.SearchTimeout = app.DefaultSearchTimeout
	}
	if cfg.MaxConcurrent == 0 {
		cfg.MaxConcurrent = app.DefaultMaxConcurrent
	}
	return cfg, app.ValidateConfig(cfg)
}

// parseSections maps names such as "maps,videos" to enabled sections. The
// web vertical is always queried and may be listed.
func parseSections(list string) (results.Sections, error) {
	var s results.Sections
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		v, ok := search.ParseVertical(name)
		if !ok {
			return s, fmt.Errorf("unknown section %q", name)
		}
		switch v {
		case search.VerticalMaps:
			s.Maps = true
		case search.VerticalImages:
			s.Images = true
		case search.VerticalVideos:
			s.Videos = true
		case search.VerticalShopping:
			s.Shopping = true
		}
	}
	return s, nil
}

func oneShot(ctx context.Context, a *app.App, o *options, stdout io.Writer) error {
	sections, err := parseSections(o.sections)
	if err != nil {
		return err
	}
	page, err := a.Search(ctx, app.Request{Query: o.query, Sections: sections})
	if err != nil {
		return err
	}
	md := a.Markdown(page)
	if o.output == "" || o.output == "-" {
		if _, err := io.WriteString(stdout, md); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		if err := os.WriteFile(o.output, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Info().Str("out", o.output).Msg("wrote markdown")
	}
	if o.pdfPath != "" {
		f, err := os.Create(o.pdfPath)
		if err != nil {
			return fmt.Errorf("create pdf: %w", err)
		}
		if err := a.WritePDF(f, page); err != nil {
			_ = f.Close()
			return fmt.Errorf("write pdf: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close pdf: %w", err)
		}
		log.Info().Str("out", o.pdfPath).Msg("wrote pdf")
	}
	return nil
}

func serve(ctx context.Context, a *app.App, cfg app.Config) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           web.New(a, log.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// A search waits for every vertical and then the model.
		WriteTimeout: cfg.SearchTimeout + 3*time.Minute,
		IdleTimeout:  2 * time.Minute,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
