package mealdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is TheMealDB's free-tier API origin.
const DefaultBaseURL = "https://themealdb.com/api/json/v1/1/"

// Endpoint describes one API call. Building a request from it never performs I/O.
type Endpoint struct {
	Method string
	Path   string
	Query  url.Values
}

// Filter lists the meals of a category.
func Filter(category string) Endpoint {
	return Endpoint{
		Method: http.MethodGet,
		Path:   "filter.php",
		Query:  url.Values{"c": []string{category}},
	}
}

// Lookup fetches full details for one meal.
func Lookup(id int) Endpoint {
	return Endpoint{
		Method: http.MethodGet,
		Path:   "lookup.php",
		Query:  url.Values{"i": []string{strconv.Itoa(id)}},
	}
}

// URL resolves the endpoint against base.
func (e Endpoint) URL(base *url.URL) (*url.URL, error) {
	if err := validateTarget(base); err != nil {
		return nil, err
	}
	rel := &url.URL{Path: strings.TrimPrefix(e.Path, "/"), RawQuery: e.Query.Encode()}
	target := base.ResolveReference(rel)
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	return target, nil
}

// Request builds the HTTP request for the endpoint.
func (e Endpoint) Request(ctx context.Context, base *url.URL) (*http.Request, error) {
	target, err := e.URL(base)
	if err != nil {
		return nil, err
	}
	method := e.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return nil, &Error{Kind: KindInvalidRequestTarget, Op: "create request", Err: err}
	}
	return req, nil
}

// ParseBaseURL normalizes the configured API origin. The result always ends in
// a slash so endpoint paths resolve beneath it.
func ParseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, &Error{Kind: KindInvalidRequestTarget, Op: "parse base url", Err: err}
	}
	if err := validateTarget(u); err != nil {
		return nil, err
	}
	u.RawQuery = ""
	u.Fragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

func validateTarget(u *url.URL) error {
	if u == nil {
		return &Error{Kind: KindInvalidRequestTarget, Op: "build url", Err: fmt.Errorf("base url is nil")}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &Error{Kind: KindInvalidRequestTarget, Op: "build url", Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &Error{Kind: KindInvalidRequestTarget, Op: "build url", Err: fmt.Errorf("missing host in %q", u.String())}
	}
	return nil
}
