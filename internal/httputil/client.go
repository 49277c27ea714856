// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/scienceparse/pkg/types"
)

// Doer sends a single HTTP request. *http.Client satisfies it; tests
// substitute fakes to observe or forbid network calls.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient returns an *http.Client configured from cfg. A zero Timeout
// leaves the client without a deadline.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// Get issues a GET for url with the configured User-Agent and any extra
// headers. Requests are sent once; there is no retry. The caller owns
// the response body.
func Get(ctx context.Context, client Doer, url string, cfg types.HTTPConfig, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	return client.Do(req)
}

// IsSuccess reports whether status is a 2xx code.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
