package search

import (
	"context"
	"fmt"
	"strings"
)

// Vertical is one of the search categories exposed by the aggregation API.
// Its value is the endpoint path segment.
type Vertical string

const (
	VerticalWeb      Vertical = "search"
	VerticalImages   Vertical = "images"
	VerticalVideos   Vertical = "videos"
	VerticalShopping Vertical = "shopping"
	VerticalMaps     Vertical = "maps"
)

// Verticals lists every vertical in display order.
var Verticals = []Vertical{VerticalWeb, VerticalMaps, VerticalImages, VerticalVideos, VerticalShopping}

// ParseVertical maps a vertical name to its Vertical. Unknown names fall back
// to the web vertical; ok reports whether the name was recognized.
func ParseVertical(name string) (v Vertical, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "search", "web":
		return VerticalWeb, true
	case "images", "image":
		return VerticalImages, true
	case "videos", "video":
		return VerticalVideos, true
	case "shopping":
		return VerticalShopping, true
	case "maps", "map", "places":
		return VerticalMaps, true
	}
	return VerticalWeb, false
}

// Canonical resolves aliases such as "map" or "image" to the vertical's
// endpoint name. Unknown names resolve to the web vertical.
func (v Vertical) Canonical() Vertical {
	pv, _ := ParseVertical(string(v))
	return pv
}

// ResultKey is the top-level array key holding the vertical's hits.
func (v Vertical) ResultKey() string {
	switch v.Canonical() {
	case VerticalImages:
		return "images"
	case VerticalVideos:
		return "videos"
	case VerticalShopping:
		return "shopping"
	case VerticalMaps:
		return "places"
	default:
		return "organic"
	}
}

// Response is the raw JSON document returned for one vertical.
type Response struct {
	Vertical Vertical
	Body     []byte
	Source   string // provider name for observability
}

// Provider issues a single query against one vertical.
type Provider interface {
	Search(ctx context.Context, vertical Vertical, query string) (Response, error)
	Name() string
}

// StatusError reports a non-2xx response from the search API.
type StatusError struct {
	Vertical Vertical
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Vertical, e.Code)
}
