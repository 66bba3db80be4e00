package app

import (
	"net"
	"net/http"
	"time"
)

// newSearchHTTPClient returns an HTTP client sized for the concurrent
// vertical fan-out: one keep-alive pool per API host, bounded timeouts.
func newSearchHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultSearchTimeout
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
