package mealdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is the raw result of a performed request.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Transport performs a request and returns its status and body. Failures to
// complete the exchange are reported as KindTransport.
type Transport interface {
	Perform(ctx context.Context, req *http.Request) (Response, error)
}

const (
	defaultUserAgent      = "galley/0.1"
	defaultRequestTimeout = 10 * time.Second
	maxBodyBytes          = 8 << 20
)

// HTTPTransport is the net/http backed Transport.
type HTTPTransport struct {
	http      *http.Client
	userAgent string
}

// Ensure HTTPTransport implements Transport at compile time.
var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport returns a transport with the given per-request timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HTTPTransport{
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// Perform executes req. Non-2xx responses are returned, not treated as errors;
// status interpretation belongs to the caller.
func (t *HTTPTransport) Perform(ctx context.Context, req *http.Request) (Response, error) {
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.http.Do(req)
	if err != nil {
		return Response{}, &Error{Kind: KindTransport, Op: "execute request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, &Error{Kind: KindTransport, Op: "read response", Err: fmt.Errorf("%s: %w", req.URL.Path, err)}
	}
	return Response{StatusCode: resp.StatusCode, Body: body}, nil
}
