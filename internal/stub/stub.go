// Package stub serves canned search API and chat completion responses so the
// whole application can run offline and in tests.
package stub

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

//go:embed fixtures/*.json
var fixtures embed.FS

// Model is the only model the stub lists.
const Model = "stub-model"

// queryRe captures the verbatim query, which may itself hold quotes or
// line breaks, up to the results header.
var queryRe = regexp.MustCompile(`(?s)query: "(.*?)"\n\nSearch Results:`)

// Options tune the stub's failure modes.
type Options struct {
	// FailVerticals answer with HTTP 500 for the named verticals.
	FailVerticals []string
	// FailChat answers every chat completion with HTTP 500.
	FailChat bool
}

// NewHandler returns a handler serving the search verticals at /<vertical>
// and an OpenAI compatible API under /v1.
func NewHandler(opts Options) http.Handler {
	failing := make(map[string]bool, len(opts.FailVerticals))
	for _, v := range opts.FailVerticals {
		failing[v] = true
	}

	r := chi.NewRouter()
	for _, v := range []string{"search", "images", "videos", "shopping", "maps"} {
		r.Post("/"+v, verticalHandler(v, failing[v]))
	}
	r.Get("/v1/models", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"object": "list",
			"data":   []map[string]any{{"id": Model, "object": "model"}},
		})
	})
	r.Post("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		if opts.FailChat {
			http.Error(w, `{"error":{"message":"stub failure"}}`, http.StatusInternalServerError)
			return
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		user := ""
		for _, m := range req.Messages {
			if m.Role == "user" {
				user = m.Content
			}
		}
		writeJSON(w, map[string]any{
			"id":     "stub-1",
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": Answer(user)},
				"finish_reason": "stop",
			}},
		})
	})
	return r
}

// Answer is the deterministic reply the stub gives to an answer prompt.
func Answer(prompt string) string {
	query := ""
	if m := queryRe.FindStringSubmatch(prompt); m != nil {
		query = m[1]
	}
	n := strings.Count(prompt, "\nTitle: ") + boolInt(strings.HasPrefix(prompt, "Title: "))
	return fmt.Sprintf("**%s** explained from %d search results.\n\n- Stub answer", query, n)
}

func verticalHandler(name string, fail bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(r.Header.Get("X-API-KEY")) == "" {
			http.Error(w, `{"message":"Unauthorized."}`, http.StatusForbidden)
			return
		}
		if fail {
			http.Error(w, `{"message":"stub failure"}`, http.StatusInternalServerError)
			return
		}
		b, err := fixtures.ReadFile("fixtures/" + name + ".json")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
	}
}

// Fixture returns the canned body for a vertical.
func Fixture(name string) ([]byte, error) {
	return fixtures.ReadFile("fixtures/" + name + ".json")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
