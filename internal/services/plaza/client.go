// Package plaza is the REST client for the plaza server's account endpoints.
package plaza

import (
	"net/http"
	"time"

	"github.com/plazahq/plaza/internal/services"
)

// NewClient provides an http.Client for requests to the plaza server. Token
// may be empty for the unauthenticated endpoints.
func NewClient(baseURL, token string) *http.Client {
	transport := services.Transport{
		BaseURL:               baseURL,
		Token:                 token,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
	}

	return &http.Client{
		Timeout:   10 * time.Second,
		Transport: &transport,
	}
}
