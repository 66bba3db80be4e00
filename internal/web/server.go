// Package web serves the search form and result page over HTTP.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hyperifyio/goanswer/internal/app"
	"github.com/hyperifyio/goanswer/internal/results"
)

//go:embed templates/*.html
var templateFS embed.FS

// Searcher runs searches and exports their pages. *app.App implements it.
type Searcher interface {
	Search(ctx context.Context, req app.Request) (*results.Page, error)
	WritePDF(w io.Writer, page *results.Page) error
}

type Server struct {
	searcher Searcher
	logger   zerolog.Logger
	tmpl     *template.Template
	md       goldmark.Markdown
}

// view is the data handed to the page template.
type view struct {
	Title       string
	Heading     string
	QueryLabel  string
	Placeholder string
	Query       string
	Sections    results.Sections
	Notice      string
	Error       string
	Page        *results.Page
	AnswerHTML  template.HTML
	ExportURL   string
}

const (
	pageTitle      = "Perplexity-like Assistant"
	pageHeading    = "Perplexity AI"
	queryLabel     = "Ask me anything:"
	queryHint      = "Ask any question to search for information, images, videos, products, and places..."
	emptyQueryText = "Please enter a search query"
)

func New(s Searcher, logger zerolog.Logger) *Server {
	srv := &Server{
		searcher: s,
		logger:   logger,
		// Raw HTML in model output is omitted since WithUnsafe is not set.
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
	srv.tmpl = template.Must(template.New("page.html").ParseFS(templateFS, "templates/*.html"))
	return srv
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	s.registerRoutes(r)
	return r
}

func (s *Server) registerRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Get("/search", s.handleSearch)
	r.Get("/api/search", s.handleAPISearch)
	r.Get("/export.pdf", s.handleExportPDF)
	r.Get("/healthz", handleHealth)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, view{})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req := parseRequest(r)
	v := view{Query: req.Query, Sections: req.Sections}
	if strings.TrimSpace(req.Query) == "" {
		v.Notice = emptyQueryText
		s.render(w, r, http.StatusOK, v)
		return
	}
	page, err := s.searcher.Search(r.Context(), req)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("search failed")
		v.Error = "An error occurred: " + err.Error()
		s.render(w, r, http.StatusBadGateway, v)
		return
	}
	v.Page = page
	v.AnswerHTML = s.markdown(page.Answer)
	v.ExportURL = "/export.pdf?" + r.URL.RawQuery
	s.render(w, r, http.StatusOK, v)
}

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	page, ok := s.runSearch(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	page, ok := s.runSearch(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := s.searcher.WritePDF(&buf, page); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("pdf export failed")
		writeError(w, http.StatusInternalServerError, "pdf export failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="goanswer.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

// runSearch serves the JSON error responses shared by the API and export
// endpoints.
func (s *Server) runSearch(w http.ResponseWriter, r *http.Request) (*results.Page, bool) {
	req := parseRequest(r)
	page, err := s.searcher.Search(r.Context(), req)
	switch {
	case errors.Is(err, app.ErrEmptyQuery) || (err == nil && page == nil):
		writeError(w, http.StatusBadRequest, "q parameter is required")
		return nil, false
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("search failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return nil, false
	}
	return page, true
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": app.BuildVersion,
		"commit":  app.BuildCommit,
		"date":    app.BuildDate,
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, v view) {
	v.Title, v.Heading = pageTitle, pageHeading
	v.QueryLabel, v.Placeholder = queryLabel, queryHint
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "page.html", v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// parseRequest reads the query and section checkboxes from the URL.
func parseRequest(r *http.Request) app.Request {
	q := r.URL.Query()
	return app.Request{
		Query: q.Get("q"),
		Sections: results.Sections{
			Maps:     checked(q.Get("maps")),
			Images:   checked(q.Get("images")),
			Videos:   checked(q.Get("videos")),
			Shopping: checked(q.Get("shopping")),
		},
	}
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "1", "true", "yes":
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
