// Package http builds the outbound HTTP clients used for scraping and for the
// third-party verification and lookup APIs.
package http

import (
	"net/http"
	"time"
)

const (
	DefaultTimeout             = 30 * time.Second
	DefaultMaxIdleConnsPerHost = 10
	DefaultIdleConnTimeout     = 90 * time.Second
	DefaultTLSHandshakeTimeout = 10 * time.Second
	DefaultUserAgent           = "newscraper/1.0 (+https://github.com/mai-repo/Newscraper)"
)

// ClientConfig configures NewClient. Zero values take the defaults above.
type ClientConfig struct {
	Timeout             time.Duration
	MaxIdleConnsPerHost int
	// UserAgent is sent on every request that does not set one itself.
	UserAgent string
	// Transport overrides the base transport. Tests use it to stub upstreams.
	Transport http.RoundTripper
}

// NewClient returns an *http.Client with a pooled transport and a default User-Agent.
func NewClient(cfg *ClientConfig) *http.Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	base := cfg.Transport
	if base == nil {
		perHost := cfg.MaxIdleConnsPerHost
		if perHost <= 0 {
			perHost = DefaultMaxIdleConnsPerHost
		}
		base = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: perHost,
			IdleConnTimeout:     DefaultIdleConnTimeout,
			TLSHandshakeTimeout: DefaultTLSHandshakeTimeout,
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{base: base, userAgent: userAgent},
	}
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}
