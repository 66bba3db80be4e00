package search

import (
	"context"

	"github.com/hyperifyio/goanswer/internal/cache"
)

// CachedProvider consults an on-disk cache before delegating to Inner and
// stores every successful response.
type CachedProvider struct {
	Inner Provider
	Cache *cache.SearchCache
	// CacheOnly, when true, never calls Inner and fails on a cache miss.
	CacheOnly bool
}

func (c *CachedProvider) Name() string { return c.Inner.Name() }

func (c *CachedProvider) Search(ctx context.Context, vertical Vertical, query string) (Response, error) {
	vertical = vertical.Canonical()
	if c.Cache != nil {
		if body, err := c.Cache.LoadBody(ctx, string(vertical), query); err == nil {
			return Response{Vertical: vertical, Body: body, Source: "cache"}, nil
		}
	}
	if c.CacheOnly {
		return Response{}, cache.ErrMiss
	}
	resp, err := c.Inner.Search(ctx, vertical, query)
	if err != nil {
		return resp, err
	}
	if c.Cache != nil {
		_ = c.Cache.Save(ctx, string(vertical), query, resp.Body)
	}
	return resp, nil
}
