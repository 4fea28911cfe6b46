// Package httpx builds the HTTP clients used for outbound requests.
package httpx

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewClient returns an http.Client with a hardened TLS configuration.
// Callers share this instead of re-defining the settings everywhere.
func NewClient(timeout time.Duration) *http.Client {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	transport := &http.Transport{
		TLSClientConfig:   tlsConfig,
		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
