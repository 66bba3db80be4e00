package search

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperifyio/goanswer/internal/cache"
)

type countingProvider struct {
	calls int
	err   error
}

func (c *countingProvider) Name() string { return "counting" }

func (c *countingProvider) Search(_ context.Context, v Vertical, _ string) (Response, error) {
	c.calls++
	if c.err != nil {
		return Response{}, c.err
	}
	return Response{Vertical: v, Body: []byte(`{"organic":[]}`), Source: c.Name()}, nil
}

func TestCachedProvider_SecondCallHitsCache(t *testing.T) {
	inner := &countingProvider{}
	p := &CachedProvider{Inner: inner, Cache: &cache.SearchCache{Dir: t.TempDir()}}
	for i := 0; i < 2; i++ {
		if _, err := p.Search(context.Background(), VerticalWeb, "golang"); err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}
}

func TestCachedProvider_ErrorsAreNotCached(t *testing.T) {
	inner := &countingProvider{err: &StatusError{Vertical: VerticalWeb, Code: 500}}
	p := &CachedProvider{Inner: inner, Cache: &cache.SearchCache{Dir: t.TempDir()}}
	for i := 0; i < 2; i++ {
		if _, err := p.Search(context.Background(), VerticalWeb, "golang"); err == nil {
			t.Fatalf("search %d: expected error", i)
		}
	}
	if inner.calls != 2 {
		t.Fatalf("inner calls = %d, want 2", inner.calls)
	}
}

func TestCachedProvider_CacheOnlyMiss(t *testing.T) {
	inner := &countingProvider{}
	p := &CachedProvider{Inner: inner, Cache: &cache.SearchCache{Dir: t.TempDir()}, CacheOnly: true}
	if _, err := p.Search(context.Background(), VerticalWeb, "golang"); !errors.Is(err, cache.ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
	if inner.calls != 0 {
		t.Fatalf("inner should not be called in cache-only mode")
	}
}
