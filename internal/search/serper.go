package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultSerperURL is the base URL of the hosted Serper API.
const DefaultSerperURL = "https://google.serper.dev"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Serper implements Provider against the google.serper.dev verticals.
type Serper struct {
	BaseURL    string // defaults to DefaultSerperURL
	APIKey     string
	HTTPClient *http.Client
	UserAgent  string // optional custom UA

	// Optional request parameters forwarded with every query.
	Country  string // gl
	Language string // hl
	Num      int

	// RetryMax is the number of retries on transient failures. Zero issues
	// exactly one request.
	RetryMax int
}

func (s *Serper) Name() string { return "serper" }

// Endpoint returns the URL for the given vertical.
func (s *Serper) Endpoint(v Vertical) string {
	base := strings.TrimRight(s.BaseURL, "/")
	if base == "" {
		base = DefaultSerperURL
	}
	return base + "/" + string(v.Canonical())
}

type serperRequest struct {
	Q   string `json:"q"`
	GL  string `json:"gl,omitempty"`
	HL  string `json:"hl,omitempty"`
	Num int    `json:"num,omitempty"`
}

func (s *Serper) Search(ctx context.Context, vertical Vertical, query string) (Response, error) {
	vertical = vertical.Canonical()
	payload, err := json.Marshal(serperRequest{Q: query, GL: s.Country, HL: s.Language, Num: s.Num})
	if err != nil {
		return Response{}, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint(vertical), bytes.NewReader(payload))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%s request: %w", vertical, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return Response{}, &StatusError{Vertical: vertical, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("%s read body: %w", vertical, err)
	}
	if !json.Valid(body) {
		return Response{}, fmt.Errorf("%s: response is not valid JSON", vertical)
	}
	return Response{Vertical: vertical, Body: body, Source: s.Name()}, nil
}

func (s *Serper) client() *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = s.RetryMax
	if rc.RetryMax < 0 {
		rc.RetryMax = 0
	}
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	// Hand the final response back to Search so status handling stays in one place.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if s.HTTPClient != nil {
		rc.HTTPClient = s.HTTPClient
	} else {
		rc.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return rc
}
