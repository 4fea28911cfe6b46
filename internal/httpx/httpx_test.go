package httpx

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"
)

func TestNewClientConfiguration(t *testing.T) {
	client := NewClient(30 * time.Second)

	if client.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", client.Timeout)
	}

	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport type = %T, want *http.Transport", client.Transport)
	}
	if transport.TLSClientConfig.MinVersion != tls.VersionTLS12 {
		t.Errorf("TLS MinVersion = %d, want TLS 1.2", transport.TLSClientConfig.MinVersion)
	}
	if !transport.ForceAttemptHTTP2 {
		t.Error("ForceAttemptHTTP2 = false, want true")
	}
}
