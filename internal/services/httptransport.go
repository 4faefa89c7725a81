// Package services holds the shared HTTP plumbing for talking to the plaza
// server's REST endpoints.
package services

import (
	"net/http"
	"strings"
	"time"
)

// Transport adds a base URL and bearer auth to each request sent by an
// http.Client that uses it.
type Transport struct {
	BaseURL,
	Token string
	MaxIdleConns int
	IdleConnTimeout,
	TLSHandshakeTimeout,
	ResponseHeaderTimeout time.Duration
}

// RoundTrip rewrites the request URL onto the configured base and attaches
// the bearer token, except on the unauthenticated account endpoints.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	path := "/" + strings.TrimPrefix(req.URL.String(), "/")

	baseURL := strings.TrimSuffix(t.BaseURL, "/")
	newURL, err := req.URL.Parse(baseURL + path)
	if err != nil {
		return nil, err
	}
	req.URL = newURL

	if t.Token != "" && path != "/register" && path != "/login" {
		req.Header.Set("Authorization", "Bearer "+t.Token)
	}
	return http.DefaultTransport.RoundTrip(req)
}
