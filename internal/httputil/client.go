// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across backends. There is
// deliberately no in-call retry here: the dispatcher's fallback chain is the
// resilience mechanism, and retrying a backend inside one search call would
// blow the calling agent's latency budget.
package httputil

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a backend request when the caller supplies none.
const DefaultTimeout = 10 * time.Second

// NewClient returns an HTTP client whose requests are bounded by timeout.
// Adapter calls are additionally bounded by the per-call context deadline;
// the client timeout is the outer safety net.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// DrainClose drains and closes a response body so the underlying connection
// can be reused.
func DrainClose(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}

// JSONBody wraps an encoded JSON payload as a request body.
func JSONBody(data []byte) io.Reader {
	return bytes.NewReader(data)
}
