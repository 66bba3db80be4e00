package app

import (
	"net/http"
	"reflect"
	"testing"
	"time"
)

func TestNewSearchHTTPClient_Config(t *testing.T) {
	c := newSearchHTTPClient(7 * time.Second)
	if c.Timeout != 7*time.Second {
		t.Fatalf("timeout=%v, want 7s", c.Timeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected http.Transport")
	}
	if tr.MaxIdleConnsPerHost < len([]string{"search", "maps", "images", "videos", "shopping"}) {
		t.Fatalf("per-host pool too small for fan-out: %d", tr.MaxIdleConnsPerHost)
	}
	if reflect.ValueOf(http.DefaultTransport).Pointer() == reflect.ValueOf(tr).Pointer() {
		t.Fatalf("transport should not be default")
	}
}

func TestNewSearchHTTPClient_DefaultTimeout(t *testing.T) {
	if c := newSearchHTTPClient(0); c.Timeout != DefaultSearchTimeout {
		t.Fatalf("timeout=%v, want %v", c.Timeout, DefaultSearchTimeout)
	}
}
